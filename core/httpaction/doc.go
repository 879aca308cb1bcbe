// Package httpaction provides a leaf action.Handler that performs one JSON
// HTTP request per action.
//
// Actions implement Action to describe the request and the value the
// response is decoded into:
//
//	type GithubRepos struct {
//	    Repos []Repo
//	}
//
//	func (GithubRepos) Method() string    { return http.MethodGet }
//	func (GithubRepos) Path() string      { return "/users/techery/repos" }
//	func (a *GithubRepos) Response() any  { return &a.Repos }
//
//	github, err := httpaction.New(HTTP, "https://api.github.com")
//
// Several handlers of the same category, one per base URL, are typically
// placed behind a proxy.Router that picks one by label.
package httpaction
