package ferogram

import (
	"context"
	"regexp"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// defaultPrefixes are the command prefixes used when none are configured.
var defaultPrefixes = []string{"/", "!"}

// CommandFilter matches command invocations like "/start" or "!help",
// optionally qualified with the bot's username ("/start@mybot").
//
// The bot username is resolved through the client on first check and cached
// for the life of the filter; concurrent first checks share a single
// resolution. Until the username is known, only unqualified invocations
// match.
type CommandFilter struct {
	prefixes    []string
	pattern     string
	description string

	resolve  singleflight.Group
	username atomic.Pointer[string]
}

// Command creates a filter matching the given command token. Multiple
// alternatives may be given separated by whitespace ("start help"). The
// default prefixes are "/" and "!".
func Command(pattern string) *CommandFilter {
	return &CommandFilter{
		prefixes: defaultPrefixes,
		pattern:  pattern,
	}
}

// Prefixes replaces the accepted command prefixes.
func (c *CommandFilter) Prefixes(prefixes ...string) *CommandFilter {
	c.prefixes = prefixes
	return c
}

// Description attaches a human-readable description, surfaced by
// Router.Commands for building bot command lists.
func (c *CommandFilter) Description(description string) *CommandFilter {
	c.description = description
	return c
}

// Check implements the Filter interface.
func (c *CommandFilter) Check(ctx context.Context, client Client, update Update) Flow {
	m := messageOf(update)
	if m == nil || m.Text == "" {
		return Break()
	}

	// Only the prefix alternation is case-insensitive; the command token
	// and username suffix match exactly.
	var sb strings.Builder
	sb.WriteString(`^(?i:`)
	for i, p := range c.prefixes {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(regexp.QuoteMeta(p))
	}
	sb.WriteString(`)(?:`)
	for i, cmd := range strings.Fields(c.pattern) {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(regexp.QuoteMeta(cmd))
	}
	sb.WriteString(`)`)
	if username := c.botUsername(ctx, client); username != "" {
		sb.WriteString(`(?:@` + regexp.QuoteMeta(username) + `)?`)
	}
	// Require a boundary so "/starter" does not match the "start" command.
	sb.WriteString(`($|\s)`)

	return FlowOf(regexp.MustCompile(sb.String()).MatchString(m.Text))
}

// botUsername returns the cached bot username, resolving it on first use.
// Resolution failures leave the cache empty so a later check retries.
func (c *CommandFilter) botUsername(ctx context.Context, client Client) string {
	if u := c.username.Load(); u != nil {
		return *u
	}
	if client == nil {
		return ""
	}

	u, err, _ := c.resolve.Do("username", func() (any, error) {
		me, err := client.Me(ctx)
		if err != nil {
			return "", err
		}
		if me == nil {
			return "", nil
		}
		return me.Username, nil
	})
	if err != nil {
		return ""
	}

	username := u.(string)
	if username != "" {
		// First writer wins; redundant stores write the same value.
		c.username.CompareAndSwap(nil, &username)
	}
	return username
}

// CommandInfo describes a registered command, aggregated from CommandFilter
// metadata by Router.Commands.
type CommandInfo struct {
	Name        string
	Description string
	Prefixes    []string
}

// info returns the filter's metadata, one entry per command alternative.
func (c *CommandFilter) info() []CommandInfo {
	var infos []CommandInfo
	for _, name := range strings.Fields(c.pattern) {
		infos = append(infos, CommandInfo{
			Name:        name,
			Description: c.description,
			Prefixes:    c.prefixes,
		})
	}
	return infos
}
