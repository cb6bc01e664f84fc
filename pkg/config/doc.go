/*
Package config loads the optional telemetryoff configuration file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |   HCL   |  |  JSON   |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Toggle beautification of patched scripts
- Make an unmatched auth call-site table fatal (strict_auth)
- Add endpoint redirects after the built-in table
- Bound the concurrency of the read-only check command

📝 Example (HCL):

	format      = true
	strict_auth = false

	redirect {
	  from = "https://telemetry.example.com"
	  to   = "${local_authority}/example"
	}

Every field is optional. Without a file the defaults match the behaviour of
the bare command.
*/
package config
