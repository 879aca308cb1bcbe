package proxy_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/core/logger"
	"github.com/dmitrymomot/actionproxy/core/proxy"
)

var exampleCategory = action.DefineCategory("example")

type Fetch struct {
	Source string
}

func (f Fetch) Label() string { return f.Source }

func (Fetch) Category() action.Category { return exampleCategory }

// printHandler reports success after printing which backend served the action.
type printHandler struct {
	action.Sink
	name string
}

func (p *printHandler) Category() action.Category { return exampleCategory }

func (p *printHandler) Send(_ context.Context, h *action.Holder, cb action.Callback) error {
	fmt.Printf("%s handled %s\n", p.name, h.Action.(Fetch).Source)
	p.Resolve(cb).OnSuccess(h)
	return nil
}

func (p *printHandler) Cancel(*action.Holder) {}

func ExampleBuilder() {
	b, err := proxy.NewBuilder(exampleCategory)
	if err != nil {
		panic(err)
	}
	_ = b.Add(&printHandler{name: "github-backend"}, proxy.Label("github"))
	_ = b.Add(&printHandler{name: "xkcd-backend"}, proxy.Label("xkcd"))

	router, err := b.Build()
	if err != nil {
		panic(err)
	}

	d := action.NewDispatcher(
		action.WithLogger(logger.Discard()),
		action.WithHandler(router),
	)

	ctx := context.Background()
	_ = d.Execute(ctx, Fetch{Source: "github"})
	_ = d.Execute(ctx, Fetch{Source: "xkcd"})

	err = d.Execute(ctx, Fetch{Source: "gitlab"})
	fmt.Println(errors.Is(err, proxy.ErrNoRoute))

	// Output:
	// github-backend handled github
	// xkcd-backend handled xkcd
	// true
}
