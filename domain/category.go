package domain

// PrimaryCategories is the fixed vocabulary for the main category of a listing
var PrimaryCategories = []string{
	"Alimentação",
	"Serviços construtivos",
	"Transportes",
	"Entregas (Motoboy)",
	"Imóveis",
	"Serviços outros",
}

// SecondaryCategories is the fixed vocabulary for the sub category of a listing
var SecondaryCategories = []string{
	"Doces",
	"Salgados",
	"Bebidas",
	"Pizzas",
	"Bolos",
	"Esfihas",
	"Cuidados Pessoais",
	"Locação de casas",
	"Locação de veículos",
	"Faxina",
	"Pintura de casas",
	"Reformas",
	"Empreiteiras",
	"Moveis Planejados",
	"Vidros",
	"Mecânica",
	"Passeios",
	"Organização de festas",
	"Gesso",
	"Pets (cuidados animais)",
	"Jardinagem",
	"Piscineiro",
	"Câmeras segurança",
	"Alarme segurança",
	"Chaveiro",
	"Caçamba",
	"Contratacao de Seguros",
	"Farmácia",
	"Xerox",
	"Eletricista",
	"Montador de móveis",
	"Dedetização",
	"Cursos",
	"Venda de Gas",
	"Higienizacao de estofados",
	"Outros",
}

var (
	primarySet   = toSet(PrimaryCategories)
	secondarySet = toSet(SecondaryCategories)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// IsPrimaryCategory reports whether c belongs to the primary vocabulary
func IsPrimaryCategory(c string) bool {
	_, ok := primarySet[c]
	return ok
}

// IsSecondaryCategory reports whether c belongs to the secondary vocabulary
func IsSecondaryCategory(c string) bool {
	_, ok := secondarySet[c]
	return ok
}

// IsKnownCategory reports whether c belongs to either vocabulary
func IsKnownCategory(c string) bool {
	return IsPrimaryCategory(c) || IsSecondaryCategory(c)
}

// Valid reports whether both levels of the pair come from their vocabularies
func (p CategoryPair) Valid() bool {
	return IsPrimaryCategory(p.Primary) && IsSecondaryCategory(p.Secondary)
}

// Vocabulary is the pair of category lists offered by the listing form
type Vocabulary struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

// Categories returns copies of both vocabularies
func Categories() Vocabulary {
	return Vocabulary{
		Primary:   append([]string(nil), PrimaryCategories...),
		Secondary: append([]string(nil), SecondaryCategories...),
	}
}
