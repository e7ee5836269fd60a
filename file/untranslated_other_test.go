//go:build !windows

package file

// untranslated returns f: only msvcrt has a translated text mode.
func untranslated(f Flags) Flags {
	return f
}
