// Package main is the entry point of auto-featured, a small content service
// that assigns a featured image to every saved post that has none.
//
// The image is the first one referenced in the post content that resolves to
// an item of the media library, or the fallback image configured on the
// settings page. The service is started with "auto-featured start"; the
// activate, deactivate, uninstall, backfill and import commands maintain the
// settings and content of a site from the command line.
package main
