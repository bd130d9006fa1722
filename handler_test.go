package ferogram

import (
	"context"
	"errors"
	"testing"
)

func TestHandler_Check(t *testing.T) {
	t.Run("kind mismatch breaks", func(t *testing.T) {
		h := OnCallbackQuery().Then(func() error { return nil })
		if h.check(context.Background(), &testClient{}, textUpdate(1, "hi")).IsContinue() {
			t.Error("callback handler matched a message update")
		}
	})

	t.Run("nil filter continues on kind match", func(t *testing.T) {
		h := OnNewMessage().Then(func() error { return nil })
		if h.check(context.Background(), &testClient{}, textUpdate(1, "hi")).IsBreak() {
			t.Error("unfiltered handler should match its kind")
		}
	})

	t.Run("multiple filters combine as And", func(t *testing.T) {
		h := OnNewMessage(Text("hello"), Group()).Then(func() error { return nil })
		if h.check(context.Background(), &testClient{}, textUpdate(1, "hello")).IsBreak() {
			t.Error("both filters pass, handler should match")
		}

		private := textUpdate(1, "hello")
		private.Message.Chat.Type = ChatPrivate
		if h.check(context.Background(), &testClient{}, private).IsContinue() {
			t.Error("one failing filter should break the handler")
		}
	})

	t.Run("command filter is surfaced as metadata", func(t *testing.T) {
		h := OnNewMessage(Text("x"), Command("start")).Then(func() error { return nil })
		if h.command == nil {
			t.Fatal("command filter not detected")
		}
	})
}

func TestHandler_Invoke(t *testing.T) {
	update := textUpdate(1, "hi")

	t.Run("without error handler errors propagate", func(t *testing.T) {
		wantErr := errors.New("boom")
		h := OnNewMessage().Then(func() error { return wantErr })

		err := h.invoke(context.Background(), &testClient{}, update, NewInjector())
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})

	t.Run("break from error handler keeps the original error", func(t *testing.T) {
		wantErr := errors.New("boom")
		h := OnNewMessage().
			Then(func() error { return wantErr }).
			OnError(func(context.Context, Client, Update, error) Flow { return Break() })

		err := h.invoke(context.Background(), &testClient{}, update, NewInjector())
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})

	t.Run("continue retries once with injected recovery values", func(t *testing.T) {
		type settings struct{ limit int }

		var calls int
		h := OnNewMessage().
			Then(func(s settings) error {
				calls++
				if s.limit != 10 {
					return errors.New("wrong settings")
				}
				return nil
			}).
			OnError(func(_ context.Context, _ Client, _ Update, err error) Flow {
				if IsMissingDependency(err) {
					return ContinueWith(settings{limit: 10})
				}
				return Break()
			})

		err := h.invoke(context.Background(), &testClient{}, update, NewInjector())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("successful endpoint calls = %d, want 1", calls)
		}
	})

	t.Run("retry happens exactly once", func(t *testing.T) {
		var calls int
		wantErr := errors.New("always fails")
		h := OnNewMessage().
			Then(func() error {
				calls++
				return wantErr
			}).
			OnError(func(context.Context, Client, Update, error) Flow { return Continue() })

		err := h.invoke(context.Background(), &testClient{}, update, NewInjector())
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
		if calls != 2 {
			t.Errorf("endpoint calls = %d, want 2", calls)
		}
	})
}
