package ferogram

import (
	"context"
	"fmt"
	"time"
)

func Example() {
	d := New().Router(func(r *Router) {
		r.Handle(
			OnNewMessage(Command("start").Description("begin a session")).
				Then(func(ctx context.Context, c *Context) error {
					_, err := c.Reply(ctx, "welcome!")
					return err
				}),
		)
	})

	client := &testClient{}
	_ = d.HandleUpdate(context.Background(), client, textUpdate(1, "/start"))

	for _, m := range client.sentMessages() {
		fmt.Println(m.text)
	}
	// Output: welcome!
}

func ExampleRouter_Handle() {
	r := NewRouter().Handle(
		OnNewMessage(Group(), Text("rules")).Then(func(m *Message, chat Chat) error {
			fmt.Printf("rules requested in %q by %s\n", chat.Title, m.Sender.Username)
			return nil
		}),
	)

	d := New().Mount(r)
	_ = d.HandleUpdate(context.Background(), &testClient{}, textUpdate(1, "what are the rules?"))
	// Output: rules requested in "test chat" by alice
}

func ExampleOr() {
	attachment := Or(Photo(), Video(), Document())

	u := mediaUpdate(MediaVideo)
	flow := attachment.Check(context.Background(), &testClient{}, u)
	fmt.Println(flow.IsContinue())
	// Output: true
}

func ExampleHandler_OnError() {
	type quota struct{ remaining int }

	h := OnNewMessage().
		Then(func(q quota) error {
			fmt.Println("remaining:", q.remaining)
			return nil
		}).
		OnError(func(_ context.Context, _ Client, _ Update, err error) Flow {
			if IsMissingDependency(err) {
				return ContinueWith(quota{remaining: 100})
			}
			return Break()
		})

	d := New().Mount(NewRouter().Handle(h))
	_ = d.HandleUpdate(context.Background(), &testClient{}, textUpdate(1, "hi"))
	// Output: remaining: 100
}

func ExampleDispatcher_Run() {
	d := New().Router(func(r *Router) {
		r.Handle(OnNewMessage(Command("ping")).Then(func(ctx context.Context, c *Context) error {
			_, err := c.Reply(ctx, "pong")
			return err
		}))
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ch := make(chan Update, 1)
	ch <- textUpdate(1, "/ping")
	close(ch)

	client := &testClient{}
	_ = d.Run(ctx, client, ChannelSource(ch))

	for _, m := range client.sentMessages() {
		fmt.Println(m.text)
	}
	// Output: pong
}
