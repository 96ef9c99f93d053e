// Package extractor finds proxy links in raw page markup.
//
// Extraction is plain pattern matching over the page text rather than a DOM
// walk: proxy links show up in href attributes, in message text and in
// inline scripts, and a text scan catches all of them with one pass per
// pattern.
//
// # Patterns
//
// Four patterns are applied in a fixed order, each as a case-insensitive
// find-all scan:
//
//  1. strict https://t.me/proxy?server=..&port=..&secret=..
//  2. strict tg://proxy?server=..&port=..&secret=..
//  3. loose https://t.me/proxy?<anything up to a quote, space or angle bracket>
//  4. loose tg://proxy?<anything up to a quote, space or angle bracket>
//
// The loose patterns overlap the strict ones on purpose. They catch links
// with reordered or extra parameters, and the duplicates they produce are
// removed after &amp; decoding, keeping the first occurrence.
//
// # Usage
//
//	links := extractor.Extract(page.Body)
//	if len(links) == 0 {
//	    // no proxies on this page
//	}
package extractor
