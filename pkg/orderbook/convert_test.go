package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cointrack-api/pkg/currency"
)

func TestConvertBook(t *testing.T) {
	book := &Book{
		Bids: []Entry{{Price: 60000, Amount: 2}},
		Asks: []Entry{{Price: 60100, Amount: 0.5}},
	}

	converted := ConvertBook(book, currency.EUR)
	require.InDelta(t, 60000*0.92, converted.Bids[0].Price, 0.001)
	require.InDelta(t, 2, converted.Bids[0].Amount, 0.001)
	require.InDelta(t, 60000*2*0.92, converted.Bids[0].Total, 0.001)
	require.InDelta(t, 60100*0.92, converted.Asks[0].Price, 0.001)

	// The source book keeps its venue denomination.
	require.InDelta(t, 60000, book.Bids[0].Price, 0.001)
	require.Zero(t, book.Bids[0].Total)
}

func TestConvertBookUSDIsIdentityOnPrices(t *testing.T) {
	book := &Book{Bids: []Entry{{Price: 100, Amount: 3}}, Asks: []Entry{}}
	converted := ConvertBook(book, currency.USD)
	require.InDelta(t, 100, converted.Bids[0].Price, 0.001)
	require.InDelta(t, 300, converted.Bids[0].Total, 0.001)
}
