package yahoo

// ChartResponse mirrors the chart API envelope. Price arrays are parallel to
// the timestamp array and individual entries may be null.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIErrorBody `json:"error"`
	} `json:"chart"`
}

type APIErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Meta       Meta    `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []QuoteArrays `json:"quote"`
	} `json:"indicators"`
}

type QuoteArrays struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type Meta struct {
	Symbol               string   `json:"symbol"`
	LongName             string   `json:"longName"`
	ShortName            string   `json:"shortName"`
	Sector               string   `json:"sector"`
	Industry             string   `json:"industry"`
	Currency             string   `json:"currency"`
	ExchangeName         string   `json:"exchangeName"`
	InstrumentType       string   `json:"instrumentType"`
	MarketState          string   `json:"marketState"`
	Timezone             string   `json:"timezone"`
	GMTOffset            int64    `json:"gmtoffset"`
	RegularMarketTime    int64    `json:"regularMarketTime"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  *int64   `json:"regularMarketVolume"`
	FiftyTwoWeekHigh     *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow      *float64 `json:"fiftyTwoWeekLow"`
}

// CompanyName picks the best available display name, falling back to the
// bare symbol.
func (m Meta) CompanyName(symbol string) string {
	if m.LongName != "" {
		return m.LongName
	}
	if m.ShortName != "" {
		return m.ShortName
	}
	return symbol
}
