package ingest

import "strings"

// Footer and summary rows that must never be mistaken for item lines. The
// two source layouts leak slightly different phrasings, so each path keeps
// its own list.
var pdfStoplist = []string{
	"shipping", "ground shipping", "subtotal", "total", "tax", "grand total",
	"please send", "payment", "bank", "note:", "payment terms", "this document",
	"past due", "interest", "net 30", "discount", "%",
}

var csvStoplist = []string{
	"shipping", "shipping cost", "ground shipping", "subtotal", "total", "tax",
	"grand total", "please send", "payment", "bank", "note:", "payment terms",
	"this document", "amount:", "invoice total:", "discount",
}

func matchesStoplist(text string, stoplist []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range stoplist {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
