package core

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
)

var bareAddress = regexp.MustCompile(`([^\s]+@[^\s]+)`)

// SenderAddress extracts the address part of a "Name <addr>" sender string.
// Strings that hold no address are returned unchanged.
func SenderAddress(sender string) string {
	if addr, err := mail.ParseAddress(sender); err == nil {
		return strings.ToLower(addr.Address)
	}
	if m := bareAddress.FindString(sender); m != "" {
		return strings.ToLower(strings.Trim(m, "<>\"'"))
	}
	return sender
}

// GroupSenders groups emails by sender address in first-seen order. Every
// email of a sender is kept as the sample and the group is labelled with the
// category of its first email.
func GroupSenders(ctx context.Context, emails []Email, categorizer *Categorizer) []SenderGroup {
	index := make(map[string]int)
	var groups []SenderGroup

	for i := range emails {
		addr := SenderAddress(emails[i].Sender)
		pos, ok := index[addr]
		if !ok {
			pos = len(groups)
			index[addr] = pos
			groups = append(groups, SenderGroup{
				Sender:   addr,
				Category: categorizer.Categorize(ctx, &emails[i]),
			})
		}
		groups[pos].Count++
		groups[pos].Emails = append(groups[pos].Emails, emails[i])
	}

	return groups
}
