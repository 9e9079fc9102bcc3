package ioworms

import "strings"

// aphiaRecord is the subset of the WoRMS AphiaRecord model the
// resolver reads.
type aphiaRecord struct {
	AphiaID        int    `json:"AphiaID"`
	ScientificName string `json:"scientificname"`
	ValidName      string `json:"valid_name"`
}

// vernacular is one entry of an AphiaVernacularsByAphiaID response.
type vernacular struct {
	Vernacular  string `json:"vernacular"`
	Language    string `json:"language"`
	IsPreferred flag   `json:"isPreferredName"`
}

// flag is a boolean that arrives as 0/1 from some WoRMS endpoints and
// as true/false from others.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	*f = s == "1" || s == "true"
	return nil
}
