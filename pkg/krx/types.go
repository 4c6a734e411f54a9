package krx

// Envelope returned by the public data portal stock price endpoint.
// Every response is wrapped in response.header / response.body.
type stockPriceResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"` // "00" means success
			ResultMsg  string `json:"resultMsg"`  // Human-readable message
		} `json:"header"`
		Body struct {
			NumOfRows  int `json:"numOfRows"`
			PageNo     int `json:"pageNo"`
			TotalCount int `json:"totalCount"`
			Items      struct {
				Item []stockPriceItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// stockPriceItem is one trading day's summary for one listing.
// All numeric fields arrive as strings.
type stockPriceItem struct {
	BasDt  string `json:"basDt"`  // base date, YYYYMMDD
	SrtnCd string `json:"srtnCd"` // short code, e.g. "005930"
	ItmsNm string `json:"itmsNm"` // listing name, e.g. "삼성전자"
	Clpr   string `json:"clpr"`   // closing price in won
	Vs     string `json:"vs"`     // change vs previous close
	FltRt  string `json:"fltRt"`  // fluctuation rate (%)
	Mkp    string `json:"mkp"`    // opening price
	Hipr   string `json:"hipr"`   // daily high
	Lopr   string `json:"lopr"`   // daily low
	Trqu   string `json:"trqu"`   // trade volume
}
