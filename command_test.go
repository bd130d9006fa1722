package ferogram

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommandSuite struct {
	suite.Suite
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandSuite))
}

func (s *CommandSuite) check(f Filter, text string) bool {
	return f.Check(context.Background(), &testClient{}, textUpdate(1, text)).IsContinue()
}

func (s *CommandSuite) TestDefaultPrefixes() {
	cmd := Command("start")
	s.True(s.check(cmd, "/start"))
	s.True(s.check(cmd, "!start"))
	s.False(s.check(cmd, "start"), "bare token must not match")
	s.False(s.check(cmd, ".start"), "unconfigured prefix must not match")
}

func (s *CommandSuite) TestBoundary() {
	cmd := Command("start")
	s.True(s.check(cmd, "/start now"))
	s.False(s.check(cmd, "/starting"), "longer command must not match a prefix of it")
	s.False(s.check(cmd, "/starter"))
	s.False(s.check(cmd, "say /start"), "command must lead the message")
}

func (s *CommandSuite) TestCaseSensitivity() {
	// Only the prefix is case-insensitive; the command token matches exactly.
	s.False(s.check(Command("start"), "/START"))

	cmd := Command("start").Prefixes("c")
	s.True(s.check(cmd, "cstart"))
	s.True(s.check(cmd, "Cstart"))
	s.False(s.check(cmd, "cSTART"))
}

func (s *CommandSuite) TestUsernameQualified() {
	// testClient resolves the bot username as "testbot".
	cmd := Command("start")
	s.True(s.check(cmd, "/start@testbot"))
	s.False(s.check(cmd, "/start@TestBot"), "username suffix matches exactly")
	s.False(s.check(cmd, "/start@otherbot"))
}

func (s *CommandSuite) TestUsernameResolutionFailureRetriesLater() {
	cmd := Command("start")
	failing := &testClient{meErr: errors.New("flood wait")}

	// Unqualified commands still match while the username is unknown.
	flow := cmd.Check(context.Background(), failing, textUpdate(1, "/start"))
	s.True(flow.IsContinue())
	flow = cmd.Check(context.Background(), failing, textUpdate(1, "/start@testbot"))
	s.False(flow.IsContinue())

	// A later check with a healthy client resolves and caches the username.
	flow = cmd.Check(context.Background(), &testClient{}, textUpdate(1, "/start@testbot"))
	s.True(flow.IsContinue())
}

func (s *CommandSuite) TestAlternatives() {
	cmd := Command("start help")
	s.True(s.check(cmd, "/start"))
	s.True(s.check(cmd, "/help"))
	s.False(s.check(cmd, "/stop"))
}

func (s *CommandSuite) TestCustomPrefixes() {
	cmd := Command("roll").Prefixes(".")
	s.True(s.check(cmd, ".roll"))
	s.False(s.check(cmd, "/roll"))
}

func (s *CommandSuite) TestNonMessageBreaks() {
	flow := Command("start").Check(context.Background(), &testClient{}, Update{
		Kind:     KindCallbackQuery,
		Callback: &CallbackQuery{ID: "1", Data: "/start"},
	})
	s.True(flow.IsBreak())
}

func (s *CommandSuite) TestInfo() {
	cmd := Command("start help").Description("basics").Prefixes("/")
	infos := cmd.info()
	s.Require().Len(infos, 2)
	s.Equal("start", infos[0].Name)
	s.Equal("help", infos[1].Name)
	s.Equal("basics", infos[0].Description)
	s.Equal([]string{"/"}, infos[1].Prefixes)
}
