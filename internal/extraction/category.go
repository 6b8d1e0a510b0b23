package extraction

import "strings"

// Category is one of the closed set of expense categories.
type Category string

const (
	CategoryTransport     Category = "Transport"
	CategoryRestaurant    Category = "Restaurant"
	CategoryLodging       Category = "Lodging"
	CategoryPurchases     Category = "Purchases"
	CategoryServices      Category = "Services"
	CategoryHealth        Category = "Health"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// categoryRules map each category to its trigger keywords. The slice
// order is the tie-break when a text matches several categories, so it
// must not be reordered: Transport, Restaurant, Lodging, Purchases,
// Services, Health. Keywords are French retail vocabulary, listed with
// and without accents because OCR output is inconsistent about
// diacritics.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryTransport, []string{
		"taxi", "uber", "sncf", "ratp", "train", "essence", "carburant",
		"gasoil", "peage", "péage", "parking", "aeroport", "aéroport",
		"avion", "metro", "métro", "tramway", "billet",
	}},
	{CategoryRestaurant, []string{
		"restaurant", "resto", "brasserie", "bistro", "pizzeria",
		"traiteur", "cafe", "café", "menu", "repas", "dejeuner",
		"déjeuner", "diner", "dîner",
	}},
	{CategoryLodging, []string{
		"hotel", "hôtel", "auberge", "airbnb", "camping", "hebergement",
		"hébergement", "chambre", "nuitee", "nuitée",
	}},
	{CategoryPurchases, []string{
		"supermarche", "supermarché", "hypermarche", "hypermarché",
		"carrefour", "auchan", "leclerc", "intermarche", "intermarché",
		"lidl", "monoprix", "fnac", "magasin", "boutique", "librairie",
	}},
	{CategoryServices, []string{
		"abonnement", "facture", "pressing", "laverie", "internet",
		"telephone", "téléphone", "mobile", "assurance", "banque",
		"coiffeur",
	}},
	{CategoryHealth, []string{
		"pharmacie", "parapharmacie", "medecin", "médecin", "docteur",
		"hopital", "hôpital", "clinique", "laboratoire", "dentiste",
		"optique", "mutuelle",
	}},
}

// Classify maps recognized text to an expense category by keyword
// membership on the lower-cased text, first match in rule order wins.
// Texts matching no keyword fall back to Miscellaneous.
func Classify(text string) Category {
	lowered := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category
			}
		}
	}
	return CategoryMiscellaneous
}
