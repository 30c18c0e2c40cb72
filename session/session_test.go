package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/toumei/toumei/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty memory store", t, func() {
		store := NewMemory()
		store.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

		Convey("Unknown sessions have no messages and no record", func() {
			messages, err := store.Messages(ctx, "nope")
			So(err, ShouldBeNil)
			So(messages, ShouldBeEmpty)
			So(messages, ShouldNotBeNil)

			s, err := store.Session(ctx, "nope")
			So(err, ShouldBeNil)
			So(s.IsAbsent(), ShouldBeTrue)
		})

		Convey("When sessions are created", func() {
			first, err := store.CreateSession(ctx, "a", "first")
			So(err, ShouldBeNil)
			second, err := store.CreateSession(ctx, "b", "second")
			So(err, ShouldBeNil)

			Convey("They get increasing numeric IDs", func() {
				So(first.ID, ShouldEqual, 1)
				So(second.ID, ShouldEqual, 2)
			})

			Convey("They are listed newest first", func() {
				sessions, err := store.Sessions(ctx)
				So(err, ShouldBeNil)
				So(sessions, ShouldHaveLength, 2)
				So(sessions[0].SessionID, ShouldEqual, "b")
				So(sessions[1].SessionID, ShouldEqual, "a")
			})

			Convey("Creating an existing one keeps the original", func() {
				again, err := store.CreateSession(ctx, "a", "renamed")
				So(err, ShouldBeNil)
				So(again, ShouldResemble, first)

				sessions, _ := store.Sessions(ctx)
				So(sessions, ShouldHaveLength, 2)
			})

			Convey("Messages keep their insertion order", func() {
				_, err := store.AppendMessage(ctx, "a", RoleUser, "hi")
				So(err, ShouldBeNil)
				_, err = store.AppendMessage(ctx, "b", RoleUser, "other")
				So(err, ShouldBeNil)
				_, err = store.AppendMessage(ctx, "a", RoleAssistant, "hello")
				So(err, ShouldBeNil)

				messages, err := store.Messages(ctx, "a")
				So(err, ShouldBeNil)
				So(messages, ShouldHaveLength, 2)
				So(messages[0].Role, ShouldEqual, RoleUser)
				So(messages[0].Content, ShouldEqual, "hi")
				So(messages[1].Role, ShouldEqual, RoleAssistant)
				So(messages[1].ID, ShouldBeGreaterThan, messages[0].ID)
			})

			Convey("The returned history is a copy", func() {
				_, _ = store.AppendMessage(ctx, "a", RoleUser, "hi")
				messages, _ := store.Messages(ctx, "a")
				messages[0].Content = "changed"

				again, _ := store.Messages(ctx, "a")
				So(again[0].Content, ShouldEqual, "hi")
			})
		})
	})

	Convey("Given concurrent appends to one session", t, func() {
		store := NewMemory()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = store.AppendMessage(ctx, "s", RoleUser, fmt.Sprint(i))
			}(i)
		}
		wg.Wait()

		Convey("No message is lost and IDs are unique", func() {
			messages, err := store.Messages(ctx, "s")
			So(err, ShouldBeNil)
			So(messages, ShouldHaveLength, 50)

			ids := make(map[int]struct{})
			for _, m := range messages {
				ids[m.ID] = struct{}{}
			}
			So(ids, ShouldHaveLength, 50)
		})
	})

	Convey("Given a cancelled context", t, func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewMemory().CreateSession(cancelled, "a", "t")
		So(err, ShouldEqual, context.Canceled)
	})
}

func TestFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file store with some history", t, func() {
		path := fmt.Sprintf("/data/sessions-%d.json", time.Now().UnixNano())

		store, err := OpenFile(path)
		So(err, ShouldBeNil)

		_, err = store.CreateSession(ctx, "a", "first")
		So(err, ShouldBeNil)
		_, err = store.AppendMessage(ctx, "a", RoleUser, "hi")
		So(err, ShouldBeNil)

		Convey("Reopening it restores sessions and messages", func() {
			reopened, err := OpenFile(path)
			So(err, ShouldBeNil)

			s, err := reopened.Session(ctx, "a")
			So(err, ShouldBeNil)
			So(s.MustGet().Title, ShouldEqual, "first")

			messages, err := reopened.Messages(ctx, "a")
			So(err, ShouldBeNil)
			So(messages, ShouldHaveLength, 1)
			So(messages[0].Content, ShouldEqual, "hi")

			Convey("And numbering continues where it stopped", func() {
				next, err := reopened.CreateSession(ctx, "b", "second")
				So(err, ShouldBeNil)
				So(next.ID, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a path without a snapshot", t, func() {
		store, err := OpenFile("/data/missing.json")

		Convey("An empty store is returned", func() {
			So(err, ShouldBeNil)
			sessions, err := store.Sessions(ctx)
			So(err, ShouldBeNil)
			So(sessions, ShouldBeEmpty)
		})
	})
}

func TestNewID(t *testing.T) {
	Convey("IDs are non-empty and unique", t, func() {
		seen := make(map[string]struct{})
		for i := 0; i < 1000; i++ {
			id := NewID()
			So(len(id), ShouldBeGreaterThan, 8)
			seen[id] = struct{}{}
		}
		So(seen, ShouldHaveLength, 1000)
	})
}
