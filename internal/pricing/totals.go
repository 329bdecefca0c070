package pricing

// Totals of a document. Total equals Subtotal: no tax or surcharge is applied.
type Totals struct {
	Subtotal float64
	Total    float64
}

func Totalize(lines []Line) Totals {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal
	}
	return Totals{Subtotal: sum, Total: sum}
}
