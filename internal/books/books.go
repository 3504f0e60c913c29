// Package books holds the fixed mapping between canonical English book names
// and the short codes used in the Clementine Vulgate corpus.
package books

// canonicalOrder lists every book in corpus order. The short codes are the
// values stored in the vector store's "book" attribute.
var canonicalOrder = []struct {
	Name string
	Code string
}{
	{"Genesis", "Gn"},
	{"Exodus", "Ex"},
	{"Leviticus", "Lv"},
	{"Numbers", "Nm"},
	{"Deuteronomy", "Dt"},
	{"Joshua", "Jos"},
	{"Judges", "Jdc"},
	{"Ruth", "Rt"},
	{"1 Samuel", "1Rg"},
	{"2 Samuel", "2Rg"},
	{"1 Kings", "3Rg"},
	{"2 Kings", "4Rg"},
	{"1 Chronicles", "1Par"},
	{"2 Chronicles", "2Par"},
	{"Ezra", "Esr"},
	{"Nehemiah", "Neh"},
	{"Tobit", "Tob"},
	{"Judith", "Jdt"},
	{"Esther", "Est"},
	{"1 Maccabees", "1Mcc"},
	{"2 Maccabees", "2Mcc"},
	{"Job", "Job"},
	{"Psalms", "Ps"},
	{"Proverbs", "Pr"},
	{"Ecclesiastes", "Ecl"},
	{"Song of Solomon", "Ct"},
	{"Wisdom", "Sap"},
	{"Sirach", "Sir"},
	{"Isaiah", "Is"},
	{"Jeremiah", "Jr"},
	{"Lamentations", "Lam"},
	{"Baruch", "Bar"},
	{"Ezekiel", "Ez"},
	{"Daniel", "Dn"},
	{"Hosea", "Os"},
	{"Joel", "Joel"},
	{"Amos", "Am"},
	{"Obadiah", "Abd"},
	{"Jonah", "Jon"},
	{"Micah", "Mch"},
	{"Nahum", "Nah"},
	{"Habakkuk", "Hab"},
	{"Zephaniah", "Soph"},
	{"Haggai", "Agg"},
	{"Zechariah", "Zach"},
	{"Malachi", "Mal"},
	{"Matthew", "Mt"},
	{"Mark", "Mc"},
	{"Luke", "Lc"},
	{"John", "Jo"},
	{"Acts", "Act"},
	{"Romans", "Rom"},
	{"1 Corinthians", "1Cor"},
	{"2 Corinthians", "2Cor"},
	{"Galatians", "Gal"},
	{"Ephesians", "Eph"},
	{"Philippians", "Phlp"},
	{"Colossians", "Col"},
	{"1 Thessalonians", "1Thes"},
	{"2 Thessalonians", "2Thes"},
	{"1 Timothy", "1Tim"},
	{"2 Timothy", "2Tim"},
	{"Titus", "Tit"},
	{"Philemon", "Phlm"},
	{"Hebrews", "Hbr"},
	{"James", "Jac"},
	{"1 Peter", "1Ptr"},
	{"2 Peter", "2Ptr"},
	{"1 John", "1Jo"},
	{"2 John", "2Jo"},
	{"3 John", "3Jo"},
	{"Jude", "Jud"},
	{"Revelation", "Apc"},
}

var (
	nameToCode = make(map[string]string, len(canonicalOrder))
	codeToName = make(map[string]string, len(canonicalOrder))
)

func init() {
	for _, b := range canonicalOrder {
		nameToCode[b.Name] = b.Code
		codeToName[b.Code] = b.Name
	}
}

// CodeFor returns the short code for a canonical book name.
func CodeFor(name string) (string, bool) {
	code, ok := nameToCode[name]
	return code, ok
}

// NameFor returns the canonical book name for a short code.
func NameFor(code string) (string, bool) {
	name, ok := codeToName[code]
	return name, ok
}

// IsCode reports whether code is a known short code.
func IsCode(code string) bool {
	_, ok := codeToName[code]
	return ok
}

// Resolve accepts either a short code or a full book name and returns the
// short code. Codes take precedence; "Job" and "Joel" are both.
func Resolve(nameOrCode string) (string, bool) {
	if IsCode(nameOrCode) {
		return nameOrCode, true
	}
	return CodeFor(nameOrCode)
}

// Names returns every canonical book name in corpus order.
func Names() []string {
	names := make([]string, len(canonicalOrder))
	for i, b := range canonicalOrder {
		names[i] = b.Name
	}
	return names
}
