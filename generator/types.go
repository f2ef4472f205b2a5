package generator

// Post is the structured blog post recovered from a model response.
type Post struct {
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Content         string `json:"content"`
}

// Tags holds the business values substituted into the message template.
type Tags struct {
	Enterprise string
	Phone      string
	SiteURL    string
	Keyword    string
}
