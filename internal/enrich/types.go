package enrich

// Result holds the metadata derived for a URL. URL is always the
// normalized form. Degraded is set when the lookup service failed and
// the remaining fields are best-effort local fallbacks.
type Result struct {
	URL         string
	Title       string
	Description string
	Image       string
	Favicon     string
	Degraded    bool
}

// apiResponse represents the lookup service response body.
// Status is "success" when Data is populated; any other value is a
// service-reported failure.
type apiResponse struct {
	Status string  `json:"status"`
	Data   apiData `json:"data"`
}

type apiData struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *apiAsset `json:"image"`
	Logo        *apiAsset `json:"logo"`
}

type apiAsset struct {
	URL string `json:"url"`
}
