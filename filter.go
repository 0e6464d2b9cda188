package viewload

import "regexp"

// compilePattern normalizes an include/exclude rule value: a pattern
// string is compiled at set-time so later matching is uniform, a
// compiled pattern is taken as-is, and nil clears the rule.
func compilePattern(v any) (*regexp.Regexp, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case string:
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		return re, nil
	case *regexp.Regexp:
		return p, nil
	default:
		return nil, &InvalidPatternTypeError{Value: v}
	}
}

// SetInclude sets the include rule from a pattern string, a compiled
// *regexp.Regexp, or nil to clear it.
func (l *Loader) SetInclude(v any) error {
	re, err := compilePattern(v)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.include = re
	return nil
}

// SetExclude sets the exclude rule. Values are accepted as for
// SetInclude.
func (l *Loader) SetExclude(v any) error {
	re, err := compilePattern(v)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.exclude = re
	return nil
}

// Include returns the compiled include rule, or nil if unset.
func (l *Loader) Include() *regexp.Regexp {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.include
}

// Exclude returns the compiled exclude rule, or nil if unset.
func (l *Loader) Exclude() *regexp.Regexp {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exclude
}

// FilterViews narrows a list of view names: the include rule retains
// matching names first, then the exclude rule drops matching names.
// A name matching both rules is dropped. With neither rule set the
// input comes back unchanged.
func (l *Loader) FilterViews(names []string) []string {
	l.mu.Lock()
	include, exclude := l.include, l.exclude
	l.mu.Unlock()
	if include == nil && exclude == nil {
		return names
	}
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if include != nil && !include.MatchString(name) {
			continue
		}
		if exclude != nil && exclude.MatchString(name) {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}
