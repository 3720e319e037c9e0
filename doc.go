/*
Package sheets2da bridges collaboratively edited Google Sheets with the static
2DA configuration tables read by a Neverwinter Nights server.

Builders edit encounter rates and package configuration in a Google Sheet
published as CSV; sheets2da downloads each published tab, converts it to
2DA V2.0 format and drops the result into the server's override directory.
The game server never touches the internet - it just reads its local .2da
files as usual.

sheets2da can be used from the command line but is really intended to be run
from a cron job or in watch mode, re-syncing whenever the published content
changes. Unchanged sheets are detected by checksum and never rewritten.

sheets2da supports the following commands:

  - sync, to download all configured sheets and write the changed ones as 2DA files
  - convert, to convert a local CSV file to 2DA format for offline checking
  - version, to display the current version
*/
package sheets2da
