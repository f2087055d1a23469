// Package localizer copies a documentation tree into a locale subdirectory,
// renaming leaf files through a filemap.Map.
//
// The tree has exactly two levels below the source root:
//
//	<root>/<chapter>/<name>.md
//	<root>/index.md
//
// and is mirrored to
//
//	<root>/<locale>/<chapter>/<localized-or-original-name>.md
//	<root>/<locale>/index.md
//
// Each pass is a full overwrite copy, so running it again over an unchanged
// source produces the same result. The first filesystem error aborts the pass;
// nothing is rolled back.
package localizer
