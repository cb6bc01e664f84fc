/*
Package status renders the console lines of a patch run.

	+----------------------+
	|        Format        |
	|   (one status line)  |
	+----------+-----------+
	           |
	+----------+-----------+
	| FormatFileOperation  |
	|   (one target row)   |
	+----------------------+

Both renderers are pure: the caller decides whether color is used, so output
is the same on a terminal and in tests once color is off.

🔍 Example:

	fmt.Println(status.Format(status.LevelSuccess, "extension renamed", true))
	fmt.Println(status.FormatFileOperation("background.js", status.FilePatched, 12, true))
*/
package status
