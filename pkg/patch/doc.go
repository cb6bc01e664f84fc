/*
Package patch holds the telemetry rule tables and the engine that applies them.

	  content
	     |
	+----v------+   +-----------------+   +-----------+   +-------------+
	| analytics |-->| crash reporting |-->| endpoints |-->| AuthPatcher |--> content
	+-----------+   +-----------------+   +-----------+   +-------------+

🎯 Purpose:
- Turn analytics and Sentry enablement flags off and clear their keys
- Point every known tracking host at LocalAuthority
- No-op the login/session call-sites of one minified build

⚡ Ordering:
Categories always run in the order above and rules inside a category run in
table order. A later rule sees the text produced by earlier ones.

🔐 Auth call-sites:
The auth table matches exact minified identifiers. It lives behind AuthPatcher
so a new upstream build only needs a new table.
*/
package patch
