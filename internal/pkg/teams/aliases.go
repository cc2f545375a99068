package teams

// Entry maps a canonical team name to its lowercase aliases (nicknames,
// abbreviations, spellings without accents).
type Entry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Table is the ordered alias table. Lookups walk it top to bottom and the
// first entry that matches wins, so order is part of the behaviour: clubs of
// the current Série A come first, then clubs kept for reference.
type Table []Entry

// SerieA2026 lists the clubs of the 2026 Brasileirão Série A.
var SerieA2026 = []string{
	"Athletico-PR",
	"Atlético-MG",
	"Bahia",
	"Botafogo",
	"Bragantino",
	"Chapecoense",
	"Corinthians",
	"Coritiba",
	"Cruzeiro",
	"Flamengo",
	"Fluminense",
	"Grêmio",
	"Internacional",
	"Mirassol",
	"Palmeiras",
	"Remo",
	"Santos",
	"São Paulo",
	"Vasco da Gama",
	"Vitória",
}

// DefaultTable is the built-in alias table.
var DefaultTable = Table{
	// Série A 2026
	{"Athletico-PR", []string{"athletico", "athletico-pr", "cap", "furacão", "furacao", "atletico-pr", "athletico paranaense"}},
	{"Atlético-MG", []string{"atlético-mg", "atletico-mg", "atlético", "atletico", "galo", "cam", "atlético mineiro", "atletico mineiro"}},
	{"Bahia", []string{"bahia", "bah", "tricolor baiano", "tricolor de aço", "esquadrão"}},
	{"Botafogo", []string{"botafogo", "bota", "fogo", "fogão", "fogao", "glorioso", "bfr"}},
	{"Bragantino", []string{"bragantino", "braga", "red bull", "rb bragantino", "massa bruta", "red bull bragantino"}},
	{"Chapecoense", []string{"chapecoense", "chape", "verdão do oeste", "índio condá"}},
	{"Corinthians", []string{"corinthians", "corintians", "cortinas", "timão", "timao", "sccp", "coringao"}},
	{"Coritiba", []string{"coritiba", "cori", "coxa", "coxa-branca", "alviverde paranaense"}},
	{"Cruzeiro", []string{"cruzeiro", "cru", "raposa", "celeste", "cabuloso"}},
	{"Flamengo", []string{"flamengo", "fla", "mengão", "mengao", "mengo", "urubu", "mengudo"}},
	{"Fluminense", []string{"fluminense", "flu", "fluzão", "fluzao", "tricolor carioca", "nense"}},
	{"Grêmio", []string{"grêmio", "gremio", "imortal", "tricolor gaúcho", "tricolor gaucho"}},
	{"Internacional", []string{"internacional", "inter", "colorado", "inter de porto alegre", "inter rs"}},
	{"Mirassol", []string{"mirassol", "mira", "leão amarelo", "leao amarelo"}},
	{"Palmeiras", []string{"palmeiras", "palm", "palme", "verdão", "verdao", "porco", "alviverde"}},
	{"Remo", []string{"remo", "leão azul", "leao azul", "azulão da amazônia"}},
	{"Santos", []string{"santos", "sfc", "peixe", "alvinegro praiano", "santástico"}},
	{"São Paulo", []string{"são paulo", "sao paulo", "spfc", "sp", "tricolor paulista", "soberano"}},
	{"Vasco da Gama", []string{"vasco", "vascão", "vascao", "gigante da colina", "cruzmaltino", "vasco da gama"}},
	{"Vitória", []string{"vitória", "vitoria", "vit", "leão da barra", "rubro-negro baiano", "ec vitória"}},

	// Reference clubs
	{"Fortaleza", []string{"fortaleza", "for", "leão", "leao", "tricolor do pici"}},
	{"Ceará", []string{"ceará", "ceara", "vozão", "vozao", "csc"}},
	{"Sport", []string{"sport", "spo", "leão da ilha", "rubro-negro pernambucano"}},
	{"Juventude", []string{"juventude", "juv", "ju", "papo"}},
	{"Cuiabá", []string{"cuiabá", "cuiaba", "cui", "dourado"}},
	{"Goiás", []string{"goiás", "goias", "goi", "esmeraldino", "verdão goiano"}},
	{"América-MG", []string{"américa-mg", "america-mg", "américa", "america", "coelho"}},
	{"Criciúma", []string{"criciúma", "criciuma", "cri", "tigre"}},
	{"Avaí", []string{"avaí", "avai", "leão da ilha azul"}},
	{"Ponte Preta", []string{"ponte preta", "ponte", "macaca"}},
	{"Guarani", []string{"guarani", "bugre"}},
	{"Novorizontino", []string{"novorizontino", "novo", "tigre do vale"}},
	{"Botafogo-SP", []string{"botafogo-sp", "bota-sp", "tricolor de ribeirão"}},
	{"CRB", []string{"crb", "galo da praia"}},
	{"CSA", []string{"csa", "azulão"}},
	{"Náutico", []string{"náutico", "nautico", "timbu"}},
	{"Paysandu", []string{"paysandu", "papão", "papao"}},
}
