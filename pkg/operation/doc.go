/*
Package operation patches an unpacked extension directory in place.

	+-------------+
	|   Runner    |
	| (Sequence)  |
	+------+------+
	       |
	+------+------+      +-------------+
	|    Walk     +----->+  Processor  |
	|  (Targets)  |      | (One file)  |
	+------+------+      +------+------+
	       |                    |
	+------+------+      +------+------+
	| Housekeeping|      | patch.Engine|
	| (_metadata, |      | + beautify  |
	|   rename)   |      +-------------+
	+-------------+

🔄 Flow:
1. Validate the extension root (ErrMissingRoot stops here, nothing is touched)
2. Process the required targets, then the optional one
3. Stop with a failure when no required target was processed
4. Remove _metadata and rename the directory with RenameSuffix
5. Print the summary; Summary.ExitCode decides the process status

⚡ Error kinds:
- ErrMissingFile and ErrReadWrite are recorded per file and never abort the walk
- ErrFormat only downgrades the output to the unformatted text
- ErrHousekeeping is reported but does not change the verdict
- ErrAuthMismatch is a warning unless strict auth is enabled

🔍 Example:

	engine, _ := patch.NewEngine()
	runner, _ := operation.NewRunner(operation.Options{
		Engine:    engine,
		Formatter: beautify.New(beautify.DefaultOptions()),
	})
	summary := runner.Run(ctx, "/path/to/extension")
	os.Exit(summary.ExitCode())
*/
package operation
