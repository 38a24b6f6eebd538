// Package theme loads page themes for mdsee and turns them into CSS.
// Themes are read from an embedded bundle and from ~/.config/mdsee/themes/,
// resolved against built-in light and dark defaults, and emitted as CSS
// custom properties plus highlight.js stylesheet links.
package theme
