package llmrouter

import "strings"

// ResolveAll resolves every model group in expression independently and
// returns the results of the groups that resolved, in expression order.
//
// Groups are separated by commas outside parentheses. Each group is a model
// followed by zero or more ":capability" segments and an optional (...)
// block, for example "gpt-4o:vision:tools(seed:1),claude-3.7-sonnet".
func (s *Selector) ResolveAll(expression string, opts ...ResolveOption) []*ResolutionResult {
	var results []*ResolutionResult
	for _, group := range SplitGroups(expression) {
		r, err := s.Resolve(group, opts...)
		if err != nil {
			s.logger.Debug().Err(err).Str("group", group).Msg("dropping unresolved group")
			continue
		}
		results = append(results, r)
	}
	return results
}

// SplitGroups tokenizes a batch expression and rewrites each group into the
// single-identifier form model[:cap,cap][(...)]. Empty groups are dropped.
func SplitGroups(expression string) []string {
	var groups []string
	depth, start := 0, 0
	flush := func(end int) {
		if g := normalizeGroup(expression[start:end]); g != "" {
			groups = append(groups, g)
		}
	}
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(expression))
	return groups
}

func normalizeGroup(group string) string {
	group = strings.TrimSpace(group)
	if group == "" {
		return ""
	}

	head, block := group, ""
	if open := strings.IndexByte(group, '('); open >= 0 {
		head, block = group[:open], group[open:]
	}

	parts := strings.Split(head, ":")
	var caps []string
	for _, c := range parts[1:] {
		if c = strings.TrimSpace(c); c != "" {
			caps = append(caps, c)
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(parts[0]))
	if len(caps) > 0 {
		b.WriteByte(':')
		b.WriteString(strings.Join(caps, ","))
	}
	b.WriteString(strings.TrimSpace(block))
	return b.String()
}
