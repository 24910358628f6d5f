// Package esperanto converts Esperanto text between UTF-8, the x-system and
// the h-system.
//
// Printed Esperanto uses six letters with diacritics: ĉ ĝ ĥ ĵ ŝ ŭ. Writers
// limited to ASCII append a suffix to the base letter instead. In the
// x-system the suffix is "x" (ĉ → cx), which never occurs after those letters
// in real words, so conversion is exact in both directions. In the h-system
// the suffix is "h" (ĉ → ch) and ŭ is written as a plain "u". Because "h" and
// "au" also appear in ordinary words ("senchava", "Nauro"), decoding the
// h-system consults a vocabulary of known literal occurrences and converts
// everything else.
//
// UTF-8 to x-system:
//
//	esperanto.UTF8ToXSystem("eĥoŝanĝo ĉiuĵaŭde") // "ehxosxangxo cxiujxauxde"
//
// h-system to UTF-8:
//
//	esperanto.HSystemToUTF8("Chiuj estas senchavaj kaj taugaj ideoj.")
//	// "Ĉiuj estas senchavaj kaj taŭgaj ideoj."
//
// The package-level functions use the embedded vocabulary with fragment
// matching. Build a Converter for custom vocabularies or the caps-aware
// suffix mode. All conversions are total: they never fail, and characters
// with no mapping pass through untouched. A word containing a literal "h"
// that is missing from the vocabulary is converted anyway; that is a known
// limitation of the h-system, not an error.
package esperanto
