// Package recommend implements the journal recommendation core: keyword
// extraction from manuscript text, heuristic suitability scoring against
// journal records, and stable ranking of the top matches.
package recommend

// academicDictionary is the fixed list of domain terms the extractor scans
// for, grouped by discipline. Matching is substring containment against the
// lowercased manuscript text, without word-boundary checks, so "cell" matches
// "cellular". Order matters: dictionary matches appear in the keyword set in
// this scan order.
var academicDictionary = []string{
	// Computer science and AI
	"machine learning",
	"deep learning",
	"neural network",
	"artificial intelligence",
	"computer vision",
	"natural language processing",
	"reinforcement learning",
	"data mining",
	"algorithm",
	"cybersecurity",
	"distributed systems",
	"software engineering",
	"robotics",
	"blockchain",
	"big data",

	// Physics
	"quantum",
	"particle",
	"photon",
	"relativity",
	"gravity",
	"cosmology",
	"astrophysics",
	"thermodynamics",
	"superconductivity",
	"plasma",
	"optics",
	"semiconductor",
	"magnetism",
	"string theory",
	"dark matter",

	// Mathematics
	"topology",
	"algebra",
	"geometry",
	"probability",
	"statistics",
	"optimization",
	"differential equation",
	"number theory",
	"graph theory",
	"combinatorics",
	"stochastic",

	// Chemistry
	"catalysis",
	"polymer",
	"organic synthesis",
	"electrochemistry",
	"spectroscopy",
	"nanomaterial",
	"crystallography",
	"molecular",
	"biochemistry",
	"photochemistry",

	// Biology
	"gene",
	"genome",
	"protein",
	"cell",
	"enzyme",
	"evolution",
	"ecology",
	"microbiome",
	"immunology",
	"neuroscience",
	"bioinformatics",
	"crispr",
	"stem cell",
	"biodiversity",

	// Medicine
	"cancer",
	"oncology",
	"cardiology",
	"diabetes",
	"epidemiology",
	"clinical trial",
	"vaccine",
	"pathology",
	"surgery",
	"pharmacology",
	"radiology",
	"mental health",
	"public health",
	"infectious disease",

	// Economics
	"macroeconomics",
	"microeconomics",
	"econometrics",
	"monetary policy",
	"financial markets",
	"labor market",
	"game theory",
	"behavioral economics",
	"international trade",
	"economic growth",

	// Engineering
	"mechanical engineering",
	"civil engineering",
	"electrical engineering",
	"aerospace",
	"manufacturing",
	"control systems",
	"signal processing",
	"fluid dynamics",
	"renewable energy",
	"materials science",

	// Environment
	"climate change",
	"sustainability",
	"pollution",
	"carbon emission",
	"ecosystem",
	"conservation",
	"water resources",
	"deforestation",
	"greenhouse gas",
	"environmental policy",

	// Social sciences
	"sociology",
	"psychology",
	"anthropology",
	"education",
	"political science",
	"linguistics",
	"demography",
	"urban planning",
	"criminology",
	"social media",
}

// stopWords is the fixed stop-word list applied to free-text tokens. Tokens
// of five characters or fewer are already dropped by the length filter, so
// short function words never reach this set; it exists for the longer
// connectives and boilerplate academic vocabulary.
var stopWords = map[string]struct{}{
	"about":       {},
	"above":       {},
	"across":      {},
	"after":       {},
	"again":       {},
	"against":     {},
	"almost":      {},
	"already":     {},
	"although":    {},
	"always":      {},
	"among":       {},
	"analysis":    {},
	"another":     {},
	"approach":    {},
	"article":     {},
	"because":     {},
	"become":      {},
	"before":      {},
	"between":     {},
	"cannot":      {},
	"compare":     {},
	"compared":    {},
	"describe":    {},
	"described":   {},
	"different":   {},
	"during":      {},
	"effect":      {},
	"effects":     {},
	"either":      {},
	"findings":    {},
	"further":     {},
	"however":     {},
	"include":     {},
	"included":    {},
	"measure":     {},
	"measured":    {},
	"method":      {},
	"methods":     {},
	"obtained":    {},
	"overall":     {},
	"paper":       {},
	"present":     {},
	"presented":   {},
	"propose":     {},
	"proposed":    {},
	"provide":     {},
	"provides":    {},
	"related":     {},
	"report":      {},
	"research":    {},
	"result":      {},
	"results":     {},
	"several":     {},
	"should":      {},
	"showed":      {},
	"significant": {},
	"studies":     {},
	"suggest":     {},
	"through":     {},
	"toward":      {},
	"towards":     {},
	"various":     {},
	"whether":     {},
	"within":      {},
	"without":     {},
}

// synonymTable expands keywords before matching them against journal text.
// Entries are directional: the key is the extracted keyword, the values are
// additional terms to try alongside it. The expanded terms are matched the
// same way as the keyword itself (lowercase substring containment).
var synonymTable = map[string][]string{
	"gravity":          {"gravitation", "gravitational"},
	"gravitation":      {"gravity", "gravitational"},
	"gravitational":    {"gravity", "gravitation"},
	"cancer":           {"oncology", "tumor"},
	"oncology":         {"cancer"},
	"heart":            {"cardiac", "cardiovascular"},
	"gene":             {"genetic", "genomics"},
	"genome":           {"genomic", "genomics"},
	"cell":             {"cellular"},
	"brain":            {"neural", "neuroscience"},
	"evolution":        {"evolutionary"},
	"immunology":       {"immune", "immunity"},
	"climate change":   {"global warming"},
	"machine learning": {"artificial intelligence"},
	"neural network":   {"deep learning"},
}
