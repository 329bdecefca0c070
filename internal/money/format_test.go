package money

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$ 1.234.567,50", Format(1234567.5))
	assert.Equal(t, "$ 2.500.000,00", Format(2500000))
	assert.Equal(t, "$ 1.000.000,01", Format(1000000.005))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2025", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(&time.Time{}))
}
