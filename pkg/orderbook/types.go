package orderbook

// InfoRequest is the envelope for Hyperliquid info endpoint requests.
type InfoRequest struct {
	Type string `json:"type"`
	Coin string `json:"coin,omitempty"`
}

// RawLevel is one price level as the venue encodes it: price and size
// travel as decimal strings, n counts resting orders at the level.
type RawLevel struct {
	Px float64 `json:"px,string"`
	Sz float64 `json:"sz,string"`
	N  int     `json:"n"`
}

// L2BookResponse mirrors the l2Book payload. Levels holds exactly two
// sides: bids (best first) then asks (best first).
type L2BookResponse struct {
	Coin   string       `json:"coin"`
	Time   int64        `json:"time"`
	Levels [][]RawLevel `json:"levels"`
}

// Entry is one depth level of the normalized book. Total is the
// notional value (price × amount) and is populated by currency
// conversion; it is zero on freshly fetched books.
type Entry struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
	Total  float64 `json:"total,omitempty"`
}

// Book is a depth-limited two-sided order book. Both sides are always
// non-nil; an unavailable book is empty, never absent.
type Book struct {
	Bids []Entry `json:"bids"`
	Asks []Entry `json:"asks"`
}

// EmptyBook returns the renderable zero shape.
func EmptyBook() *Book {
	return &Book{Bids: []Entry{}, Asks: []Entry{}}
}

// bookFromSides normalizes raw venue levels, truncating each side to
// depth entries.
func bookFromSides(bids, asks []RawLevel, depth int) *Book {
	book := EmptyBook()
	for i, level := range bids {
		if i >= depth {
			break
		}
		book.Bids = append(book.Bids, Entry{Price: level.Px, Amount: level.Sz})
	}
	for i, level := range asks {
		if i >= depth {
			break
		}
		book.Asks = append(book.Asks, Entry{Price: level.Px, Amount: level.Sz})
	}
	return book
}

// subscribeMessage is the WebSocket subscription request.
type subscribeMessage struct {
	Method       string       `json:"method"`
	Subscription subscription `json:"subscription"`
}

type subscription struct {
	Type string `json:"type"`
	Coin string `json:"coin"`
}

// streamMessage is one incoming WebSocket frame.
type streamMessage struct {
	Channel string     `json:"channel"`
	Data    l2BookData `json:"data"`
}

type l2BookData struct {
	Coin   string       `json:"coin"`
	Time   int64        `json:"time"`
	Levels [][]RawLevel `json:"levels"`
}
