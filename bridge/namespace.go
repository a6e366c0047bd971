package bridge

// Namespace operations act on the engine's process-wide registry.
// Registrations are never undone.

// RegisterNamespace registers uri with a suggested prefix and returns the
// prefix actually assigned, which may differ when the suggestion is taken.
func (b *Bridge) RegisterNamespace(rec *ErrorRecord, uri, suggestedPrefix string) OwnedString {
	return b.text(rec, "register_namespace", func() (string, error) {
		return b.toolkit.RegisterNamespace(uri, suggestedPrefix)
	})
}

// NamespacePrefix looks up the prefix registered for uri.
func (b *Bridge) NamespacePrefix(rec *ErrorRecord, uri string) (OwnedString, bool) {
	return b.optionalText(rec, "namespace_prefix", func() (string, bool, error) {
		return b.toolkit.NamespacePrefix(uri)
	})
}

// NamespaceURI looks up the URI registered for prefix.
func (b *Bridge) NamespaceURI(rec *ErrorRecord, prefix string) (OwnedString, bool) {
	return b.optionalText(rec, "namespace_uri", func() (string, bool, error) {
		return b.toolkit.NamespaceURI(prefix)
	})
}

// DumpNamespaces returns the engine's listing of the registry.
func (b *Bridge) DumpNamespaces(rec *ErrorRecord) OwnedString {
	return b.text(rec, "dump_namespaces", func() (string, error) {
		return collect(func(out func([]byte) error) error {
			return b.toolkit.DumpNamespaces(out)
		})
	})
}
