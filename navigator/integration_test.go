// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build integration

package navigator_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/navigator/history"
	"rivaas.dev/navigator/navigator"
	"rivaas.dev/navigator/route"
)

// screen plays the presentation layer: it records what it renders.
type screen struct {
	mu       sync.Mutex
	rendered []string
}

func (s *screen) OnRouteSettled(_ context.Context, st navigator.Settlement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !st.Route.Found() {
		s.rendered = append(s.rendered, "NotFound")
		return
	}
	s.rendered = append(s.rendered, st.Route.View().(string))
}

func (s *screen) views() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rendered...)
}

var _ = Describe("Navigator", func() {
	var (
		table  *route.Table
		hist   *history.Memory
		engine *navigator.Engine
		view   *screen
	)

	BeforeEach(func() {
		table = route.MustNew(
			route.Definition{Path: "/", Name: "Home", View: "Home"},
			route.Definition{Path: "/profit/detail", Name: "ProfitDetail", View: "ProfitDetail"},
		)
		hist = history.MustNewMemory(history.WithMode(history.ModeHash), history.WithBase("/app"))
		view = &screen{}
		engine = navigator.MustNew(table, hist, navigator.WithListener(view))
		DeferCleanup(engine.Close)
	})

	settle := func(n *navigator.Navigation) navigator.ActiveRoute {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		r, err := n.Wait(ctx)
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	Describe("push navigation", func() {
		It("renders the matched view and updates the address bar", func() {
			r := settle(engine.Push(context.Background(), "/profit/detail"))

			Expect(r.Name()).To(Equal("ProfitDetail"))
			Expect(hist.Address()).To(Equal("/app/#/profit/detail"))
			Expect(view.views()).To(Equal([]string{"ProfitDetail"}))
		})

		It("keeps a single history entry for repeated navigation", func() {
			settle(engine.Push(context.Background(), "/profit/detail"))
			settle(engine.Push(context.Background(), "/profit/detail"))

			Expect(hist.Len()).To(Equal(2))
			Expect(view.views()).To(HaveLen(2))
		})

		It("renders a not-found view for unknown paths", func() {
			r := settle(engine.Push(context.Background(), "/does-not-exist"))

			Expect(r.Found()).To(BeFalse())
			Expect(view.views()).To(Equal([]string{"NotFound"}))
		})
	})

	Describe("back and forward", func() {
		BeforeEach(func() {
			settle(engine.Push(context.Background(), "/profit/detail"))
		})

		It("follows traversal without creating entries", func() {
			Expect(engine.Back()).To(Succeed())
			Expect(engine.Active().Name()).To(Equal("Home"))
			Expect(hist.Len()).To(Equal(2))

			Expect(engine.Forward()).To(Succeed())
			Expect(engine.Active().Name()).To(Equal("ProfitDetail"))
			Expect(hist.Position()).To(Equal(1))
		})

		It("drops forward entries on a new push", func() {
			Expect(engine.Back()).To(Succeed())
			settle(engine.Push(context.Background(), "/does-not-exist"))

			Expect(hist.Len()).To(Equal(2))
			Expect(engine.Forward()).To(MatchError(history.ErrOutOfRange))
		})
	})

	Describe("supersession", func() {
		It("announces only the last of two overlapping navigations", func() {
			entered := make(chan struct{})
			slow := navigator.PreparerFunc(func(ctx context.Context, m route.Match) error {
				if m.Path == "/a" {
					close(entered)
					<-ctx.Done()
					return context.Cause(ctx)
				}
				return nil
			})

			Expect(engine.Close()).To(Succeed())
			engine = navigator.MustNew(table, hist, navigator.WithListener(view), navigator.WithPreparer(slow))
			DeferCleanup(engine.Close)

			first := make(chan *navigator.Navigation, 1)
			go func() {
				defer GinkgoRecover()
				first <- engine.Push(context.Background(), "/a")
			}()
			Eventually(entered).Should(BeClosed())

			second := engine.Push(context.Background(), "/profit/detail")
			Expect(settle(second).Name()).To(Equal("ProfitDetail"))
			Expect(settle(<-first).Name()).To(Equal("ProfitDetail"))

			Expect(view.views()).To(Equal([]string{"ProfitDetail"}))
		})
	})
})
