// Package docsearch is a Go client for the docsearch HTTP API.
//
// The service answers a natural-language question with a formatted,
// citation-bearing text block assembled from the document index:
//
//	client := docsearch.New("http://localhost:8080", docsearch.WithAPIKey("secret"))
//	res, err := client.Search(ctx, "What color is the sky in TXTland?")
//	if err != nil { ... }
//	fmt.Println(res.Result)
package docsearch
