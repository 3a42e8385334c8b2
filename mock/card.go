package mock

import "github.com/fwojciec/placelist"

var _ placelist.CardReader = (*CardReader)(nil)

// CardReader is a mock implementation of placelist.CardReader.
type CardReader struct {
	ReadCardsFn func(html string) ([]placelist.Card, error)
}

func (r *CardReader) ReadCards(html string) ([]placelist.Card, error) {
	return r.ReadCardsFn(html)
}

var _ placelist.LineReader = (*LineReader)(nil)

// LineReader is a mock implementation of placelist.LineReader.
type LineReader struct {
	ReadLinesFn func(html string) ([]string, error)
}

func (r *LineReader) ReadLines(html string) ([]string, error) {
	return r.ReadLinesFn(html)
}
