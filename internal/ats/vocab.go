package ats

// Category names a regional-context keyword group.
type Category string

const (
	CategoryLocation      Category = "location"
	CategoryBBBEE         Category = "bbbee"
	CategoryNQF           Category = "nqf"
	CategoryCertification Category = "certification"
	CategoryLanguage      Category = "language"
)

// Categories lists every regional category in scoring order.
var Categories = []Category{
	CategoryBBBEE,
	CategoryNQF,
	CategoryLocation,
	CategoryLanguage,
	CategoryCertification,
}

var sectionWords = []string{
	"education",
	"experience",
	"skills",
	"qualifications",
	"work history",
	"employment",
	"references",
	"personal details",
}

var contactWords = []string{
	"email",
	"e-mail",
	"phone",
	"tel",
	"mobile",
	"cell",
	"address",
	"linkedin",
}

var actionVerbs = []string{
	"managed",
	"developed",
	"created",
	"implemented",
	"led",
	"designed",
	"achieved",
	"improved",
	"increased",
	"reduced",
	"delivered",
	"launched",
	"coordinated",
	"established",
	"negotiated",
	"streamlined",
	"supervised",
	"trained",
	"analysed",
	"analyzed",
	"built",
	"generated",
	"mentored",
	"optimised",
	"optimized",
	"organised",
	"spearheaded",
	"resolved",
}

var skillVocabulary = []string{
	// technical
	"python", "java", "javascript", "typescript", "c++", "c#", "golang", "php", "ruby",
	"sql", "mysql", "postgresql", "mongodb", "html", "css", "react", "angular", "vue",
	"node.js", ".net", "aws", "azure", "gcp", "docker", "kubernetes", "linux", "git",
	"excel", "power bi", "tableau", "sap", "pastel", "sage", "salesforce", "machine learning",
	"data analysis", "project management", "agile", "scrum", "autocad", "networking",
	"cybersecurity", "accounting", "bookkeeping", "payroll", "auditing", "marketing",
	"seo", "sales",
	// soft
	"leadership", "communication", "teamwork", "problem solving", "time management",
	"customer service", "negotiation", "presentation", "critical thinking", "adaptability",
}

var locationTerms = []string{
	"south africa",
	"south african",
	"rsa",
	"gauteng",
	"western cape",
	"eastern cape",
	"northern cape",
	"kwazulu-natal",
	"kzn",
	"free state",
	"limpopo",
	"mpumalanga",
	"north west",
	"johannesburg",
	"joburg",
	"jhb",
	"cape town",
	"durban",
	"pretoria",
	"tshwane",
	"port elizabeth",
	"gqeberha",
	"bloemfontein",
	"east london",
	"polokwane",
	"mbombela",
	"nelspruit",
	"kimberley",
	"pietermaritzburg",
	"soweto",
	"sandton",
	"centurion",
	"midrand",
	"stellenbosch",
}

var certificationTerms = []string{
	"saica",
	"ca(sa)",
	"saipa",
	"cima",
	"acca",
	"ecsa",
	"hpcsa",
	"sacap",
	"sace",
	"seta",
	"iitpsa",
	"irba",
	"fpi",
	"cfp",
	"sacssp",
	"lpc",
	"pmsa",
}

var languageTerms = []string{
	"afrikaans",
	"isizulu",
	"zulu",
	"isixhosa",
	"xhosa",
	"sesotho",
	"sotho",
	"setswana",
	"tswana",
	"sepedi",
	"pedi",
	"xitsonga",
	"tsonga",
	"tshivenda",
	"venda",
	"siswati",
	"swati",
	"isindebele",
	"ndebele",
	"sign language",
}

var stopWords = map[string]struct{}{
	"and":  {},
	"the":  {},
	"for":  {},
	"with": {},
	"that": {},
	"this": {},
	"have": {},
	"from": {},
}
