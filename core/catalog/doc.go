// Package catalog loads the crop catalog from a YAML or JSON file.
//
// The file holds an ordered list so the benchmark grid can rely on the
// order the user wrote:
//
//	crops:
//	  - name: Pumpkin
//	    duration: 90
//	    ideal_temperature: 25
package catalog
