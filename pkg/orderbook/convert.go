package orderbook

import "cointrack-api/pkg/currency"

// ConvertBook returns a copy of book with prices converted from the
// venue's USD denomination into target, filling per-level notional
// totals along the way. The input book is left untouched.
func ConvertBook(book *Book, target currency.Code) *Book {
	if book == nil {
		return nil
	}

	out := &Book{
		Bids: make([]Entry, 0, len(book.Bids)),
		Asks: make([]Entry, 0, len(book.Asks)),
	}
	for _, entry := range book.Bids {
		out.Bids = append(out.Bids, convertEntry(entry, target))
	}
	for _, entry := range book.Asks {
		out.Asks = append(out.Asks, convertEntry(entry, target))
	}
	return out
}

func convertEntry(entry Entry, target currency.Code) Entry {
	return Entry{
		Price:  currency.ConvertFromUSD(entry.Price, target),
		Amount: entry.Amount,
		Total:  currency.ConvertFromUSD(entry.Price*entry.Amount, target),
	}
}
