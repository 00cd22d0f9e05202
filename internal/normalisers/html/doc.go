// Package html extracts readable text from saved HTML pages, such as
// judgments downloaded from online law reports. Scripts, styles and markup
// are dropped and entities decoded.
package html
