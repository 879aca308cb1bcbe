package main

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/actionproxy/core/action"
)

// Sample is the category every sample action belongs to.
var Sample = action.DefineCategory("sample")

type Repo struct {
	Name  string `json:"name"`
	URL   string `json:"html_url"`
	Stars int    `json:"stargazers_count"`
}

// GithubRepos lists public repositories of a GitHub user.
type GithubRepos struct {
	User  string `json:"user"`
	Repos []Repo `json:"-"`
}

func (*GithubRepos) Category() action.Category { return Sample }

func (*GithubRepos) Label() string { return "github" }

func (*GithubRepos) Method() string { return http.MethodGet }

func (a *GithubRepos) Path() string { return "users/" + url.PathEscape(a.User) + "/repos" }

func (a *GithubRepos) Response() any { return &a.Repos }

type Comic struct {
	Num   int    `json:"num"`
	Title string `json:"safe_title"`
	Image string `json:"img"`
}

// XkcdComic fetches the current xkcd comic.
type XkcdComic struct {
	Comic Comic `json:"-"`
}

func (*XkcdComic) Category() action.Category { return Sample }

func (*XkcdComic) Label() string { return "xkcd" }

func (*XkcdComic) Method() string { return http.MethodGet }

func (*XkcdComic) Path() string { return "info.0.json" }

func (a *XkcdComic) Response() any { return &a.Comic }

// Notice is appended to the Redis outbox after a run.
type Notice struct {
	Repos    int       `json:"repos"`
	Comic    int       `json:"comic"`
	Finished time.Time `json:"finished"`
}

func (Notice) Category() action.Category { return Sample }

func (Notice) Label() string { return "outbox" }
