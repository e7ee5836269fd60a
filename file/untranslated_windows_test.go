package file

// untranslated disables msvcrt text mode, which rewrites newlines.
func untranslated(f Flags) Flags {
	return f.Binary()
}
