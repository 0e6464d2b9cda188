package viewload

import "fmt"

// argAliases maps the compatibility names kept for callers of older
// releases onto the canonical argument names.
var argAliases = map[string]string{
	"user":                    "username",
	"additional_classes":      "import_classes",
	"additional_base_classes": "base_classes",
	"constraint":              "include",
}

// argNoOps are accepted and silently ignored.
var argNoOps = map[string]bool{
	"debug":         true,
	"relationships": true,
}

// knownArgs is the canonical construction surface of NewFromMap.
var knownArgs = map[string]bool{
	"dsn":               true,
	"username":          true,
	"password":          true,
	"options":           true,
	"namespace":         true,
	"include":           true,
	"exclude":           true,
	"base_classes":      true,
	"left_base_classes": true,
	"import_classes":    true,
}

// NewFromMap builds a Loader from a named-argument map, the surface
// used by ConfigFromFile and by callers porting from keyword-style
// construction. Aliases are folded onto their canonical names and
// every unrecognised key is collected into one
// UnrecognisedArgumentsError. The dsn, when present, is applied last
// so resolution sees the rest of the configuration.
func NewFromMap(args map[string]any) (*Loader, error) {
	canonical := make(map[string]any, len(args))
	var unknown []string
	for key, value := range args {
		if alias, ok := argAliases[key]; ok {
			key = alias
		}
		if argNoOps[key] {
			continue
		}
		if !knownArgs[key] {
			unknown = append(unknown, key)
			continue
		}
		canonical[key] = value
	}
	if len(unknown) > 0 {
		return nil, NewUnrecognisedArgumentsError(unknown)
	}

	l := &Loader{}
	for _, key := range []string{
		"username", "password", "options", "namespace",
		"include", "exclude", "base_classes", "left_base_classes",
		"import_classes", "dsn",
	} {
		value, ok := canonical[key]
		if !ok {
			continue
		}
		if err := applyArg(l, key, value); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func applyArg(l *Loader, key string, value any) error {
	switch key {
	case "dsn":
		s, err := argString(key, value)
		if err != nil {
			return err
		}
		return l.SetDSN(s)
	case "username":
		s, err := argString(key, value)
		if err != nil {
			return err
		}
		l.SetUsername(s)
	case "password":
		s, err := argString(key, value)
		if err != nil {
			return err
		}
		l.SetPassword(s)
	case "namespace":
		s, err := argString(key, value)
		if err != nil {
			return err
		}
		l.SetNamespace(s)
	case "options":
		opts, err := argStringMap(key, value)
		if err != nil {
			return err
		}
		l.SetOptions(opts)
	case "include":
		return l.SetInclude(value)
	case "exclude":
		return l.SetExclude(value)
	case "base_classes":
		names, err := argStrings(key, value)
		if err != nil {
			return err
		}
		l.SetBaseClasses(names...)
	case "left_base_classes":
		names, err := argStrings(key, value)
		if err != nil {
			return err
		}
		l.SetLeftBaseClasses(names...)
	case "import_classes":
		classes, err := argImportClasses(value)
		if err != nil {
			return err
		}
		l.SetImportClasses(classes...)
	}
	return nil
}

func argString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("viewload: argument %s: want string, got %T", key, value)
	}
	return s, nil
}

func argStringMap(key string, value any) (map[string]string, error) {
	switch m := value.(type) {
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("viewload: argument %s: key %s: want string, got %T", key, k, v)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("viewload: argument %s: want map of strings, got %T", key, value)
	}
}

func argStrings(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("viewload: argument %s: want strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("viewload: argument %s: want list of strings, got %T", key, value)
	}
}

// argImportClasses accepts ready ImportClass values or names resolved
// through the import-class registry. An unregistered name still
// becomes an entry; it surfaces as a NoImportFunctionWarning at
// synthesis time, matching how a module without an import function is
// treated.
func argImportClasses(value any) ([]ImportClass, error) {
	switch v := value.(type) {
	case []ImportClass:
		return v, nil
	case []string:
		out := make([]ImportClass, 0, len(v))
		for _, name := range v {
			out = append(out, lookupImportClass(name))
		}
		return out, nil
	case []any:
		out := make([]ImportClass, 0, len(v))
		for _, item := range v {
			switch ic := item.(type) {
			case ImportClass:
				out = append(out, ic)
			case string:
				out = append(out, lookupImportClass(ic))
			default:
				return nil, fmt.Errorf("viewload: argument import_classes: want names or ImportClass values, got %T", item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("viewload: argument import_classes: want names or ImportClass values, got %T", value)
	}
}
