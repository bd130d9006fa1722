package ferogram

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ParseUpdateSuite struct {
	suite.Suite
}

func TestParseUpdateSuite(t *testing.T) {
	suite.Run(t, new(ParseUpdateSuite))
}

func (s *ParseUpdateSuite) TestNewMessage() {
	raw := []byte(`{"message": {"id": 7, "chat": {"id": 100, "type": "group"}, "sender": {"id": 1, "username": "alice"}, "text": "hello"}}`)

	u, err := ParseUpdate(raw)
	s.Require().NoError(err)
	s.Equal(KindNewMessage, u.Kind)
	s.Require().NotNil(u.Message)
	s.Equal(int64(7), u.Message.ID)
	s.Equal("hello", u.Message.Text)
	s.Equal(ChatGroup, u.Message.Chat.Type)
	s.Equal("alice", u.Message.Sender.Username)
}

func (s *ParseUpdateSuite) TestEditedMessage() {
	u, err := ParseUpdate([]byte(`{"edited_message": {"id": 7, "chat": {"id": 1, "type": "private"}, "text": "fixed"}}`))
	s.Require().NoError(err)
	s.Equal(KindMessageEdited, u.Kind)
	s.Equal("fixed", u.Message.Text)
}

func (s *ParseUpdateSuite) TestDeletedMessages() {
	u, err := ParseUpdate([]byte(`{"deleted_messages": {"chat_id": 100, "message_ids": [1, 2, 3]}}`))
	s.Require().NoError(err)
	s.Equal(KindMessageDeleted, u.Kind)
	s.Require().NotNil(u.Deletion)
	s.Equal(int64(100), u.Deletion.ChatID)
	s.Len(u.Deletion.MessageIDs, 3)
}

func (s *ParseUpdateSuite) TestCallbackQuery() {
	u, err := ParseUpdate([]byte(`{"callback_query": {"id": "cb1", "sender": {"id": 1}, "chat_id": 100, "message_id": 7, "data": "page:2"}}`))
	s.Require().NoError(err)
	s.Equal(KindCallbackQuery, u.Kind)
	s.Equal("page:2", u.Callback.Data)
	s.Equal(int64(7), u.Callback.MessageID)
}

func (s *ParseUpdateSuite) TestInlineQuery() {
	u, err := ParseUpdate([]byte(`{"inline_query": {"id": "q1", "sender": {"id": 1}, "query": "cats", "offset": ""}}`))
	s.Require().NoError(err)
	s.Equal(KindInlineQuery, u.Kind)
	s.Equal("cats", u.Inline.Query)
}

func (s *ParseUpdateSuite) TestInlineSend() {
	u, err := ParseUpdate([]byte(`{"inline_send": {"id": "s1", "sender": {"id": 1}, "query": "cats", "result_id": "r9"}}`))
	s.Require().NoError(err)
	s.Equal(KindInlineSend, u.Kind)
	s.Equal("r9", u.InlineSend.ResultID)
}

func (s *ParseUpdateSuite) TestUnknownEnvelopeFallsBackToRaw() {
	raw := []byte(`{"channel_difference": {"pts": 42}}`)
	u, err := ParseUpdate(raw)
	s.Require().NoError(err)
	s.Equal(KindRaw, u.Kind)
	s.JSONEq(string(raw), string(u.Raw))
}

func (s *ParseUpdateSuite) TestRawCopyDoesNotAliasInput() {
	raw := []byte(`{"other": 1}`)
	u, err := ParseUpdate(raw)
	s.Require().NoError(err)

	raw[1] = 'X'
	s.JSONEq(`{"other": 1}`, string(u.Raw))
}

func (s *ParseUpdateSuite) TestInvalidJSON() {
	_, err := ParseUpdate([]byte(`{"message":`))
	s.ErrorIs(err, ErrInvalidJSON)
}

func (s *ParseUpdateSuite) TestMalformedPayload() {
	_, err := ParseUpdate([]byte(`{"message": {"id": "not a number"}}`))
	s.Error(err)
	s.NotErrorIs(err, ErrInvalidJSON)
}

func (s *ParseUpdateSuite) TestClassificationOrder() {
	// Both fields present: the first rule wins.
	u, err := ParseUpdate([]byte(`{"message": {"id": 1, "chat": {"id": 1, "type": "private"}}, "callback_query": {"id": "x"}}`))
	s.Require().NoError(err)
	s.Equal(KindNewMessage, u.Kind)
}
