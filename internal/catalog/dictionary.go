package catalog

// wordVariations is a hand-curated dictionary of Turkish synonyms,
// derivatives and common ASCII misspellings. Lookup is asymmetric and
// keyed on the exact full lowercase term; keeping it small is a feature,
// not an omission.
var wordVariations = map[string][]string{
	"ampul":   {"ampül", "ampu", "lamba"},
	"ampül":   {"ampul", "ampu", "lamba"},
	"çelik":   {"celik", "steel"},
	"çeşit":   {"cesit", "tür", "tip"},
	"düğme":   {"dugme", "buton"},
	"göz":     {"goz", "eye"},
	"hızlı":   {"hizli", "fast", "sürat"},
	"işık":    {"isik", "light", "ışık"},
	"kağıt":   {"kagit", "paper"},
	"küçük":   {"kucuk", "small", "mini"},
	"büyük":   {"buyuk", "large", "big"},
	"müşteri": {"musteri", "customer"},
	"ölçü":    {"olcu", "size", "measure"},
	"özel":    {"ozel", "special"},
	"şeker":   {"seker", "sugar"},
	"tüp":     {"tup", "tube"},
	"ürün":    {"urun", "product"},
	"üst":     {"ust", "top", "upper"},
	"yan":     {"side", "lateral"},
	"yeni":    {"new", "fresh"},
}
