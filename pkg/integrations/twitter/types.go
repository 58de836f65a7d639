package twitter

// searchResponse mirrors the recent-search endpoint payload, limited to
// the fields the fetch pipeline requests.
type searchResponse struct {
	Data     []apiTweet  `json:"data"`
	Includes apiIncludes `json:"includes"`
	Meta     apiMeta     `json:"meta"`
}

type apiIncludes struct {
	Users []apiUser `json:"users"`
}

type apiMeta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token,omitempty"`
}

type apiTweet struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	AuthorID      string         `json:"author_id"`
	CreatedAt     string         `json:"created_at"`
	PublicMetrics map[string]int `json:"public_metrics"`
}

type apiUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// apiError is the error envelope returned for non-2xx responses.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
