package keywords

// stopwords are common English function words dropped before lemmatization.
var stopwords = toSet(
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all",
	"almost", "alone", "along", "already", "also", "although", "always", "am", "among",
	"amongst", "an", "and", "another", "any", "anyhow", "anyone", "anything", "anyway",
	"anywhere", "are", "around", "as", "at", "back", "be", "became", "because", "become",
	"becomes", "becoming", "been", "before", "beforehand", "behind", "being", "below",
	"beside", "besides", "between", "beyond", "both", "but", "by", "ca", "can", "cannot",
	"could", "did", "do", "does", "doing", "done", "down", "due", "during", "each",
	"either", "else", "elsewhere", "enough", "even", "ever", "every", "everyone",
	"everything", "everywhere", "except", "few", "first", "for", "former", "formerly",
	"from", "further", "had", "has", "have", "he", "hence", "her", "here", "hereafter",
	"hereby", "herein", "hers", "herself", "him", "himself", "his", "how", "however",
	"i", "if", "in", "indeed", "into", "is", "it", "its", "itself", "just", "last",
	"latter", "least", "less", "many", "may", "me", "meanwhile", "might", "mine", "more",
	"moreover", "most", "mostly", "much", "must", "my", "myself", "namely", "neither",
	"never", "nevertheless", "next", "no", "nobody", "none", "noone", "nor", "not",
	"nothing", "now", "nowhere", "of", "off", "often", "on", "once", "one", "only",
	"onto", "or", "other", "others", "otherwise", "our", "ours", "ourselves", "out",
	"over", "own", "per", "perhaps", "please", "quite", "rather", "re", "really",
	"regarding", "same", "say", "several", "she", "should", "since", "so", "some",
	"somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still",
	"such", "than", "that", "the", "their", "them", "themselves", "then", "thence",
	"there", "thereafter", "thereby", "therefore", "therein", "these", "they", "this",
	"those", "though", "through", "throughout", "thru", "thus", "to", "together", "too",
	"toward", "towards", "under", "unless", "until", "up", "upon", "us", "used", "using",
	"various", "very", "via", "was", "we", "well", "were", "what", "whatever", "when",
	"whence", "whenever", "where", "whereas", "whereby", "wherein", "whether", "which",
	"while", "who", "whoever", "whole", "whom", "whose", "why", "will", "with", "within",
	"without", "would", "yet", "you", "your", "yours", "yourself", "yourselves",
)

// lowInformationLemmas are verbs and nouns that survive POS filtering but carry no
// signal for matching.
var lowInformationLemmas = toSet(
	"be", "have", "do", "get", "make", "go", "take", "come", "see", "know",
	"think", "look", "want", "give", "find", "tell", "ask", "seem", "feel", "try",
	"leave", "call", "keep", "let", "begin", "show", "hear", "put", "mean", "become",
	"include", "continue", "set", "turn", "happen", "bring", "hold", "stand", "provide",
	"need", "allow", "add", "stay", "fall", "reach", "remain", "suggest", "raise", "pass",
	"require", "offer", "consider", "appear", "expect", "involve", "seek", "join", "like",
	"love", "enjoy", "help", "apply", "ensure", "follow", "meet", "receive", "send",
	"thing", "way", "lot", "kind", "part", "place", "case", "point", "fact", "time",
	"day", "etc", "able", "plus", "well", "new", "good", "great", "strong",
	"excellent", "ideal", "candidate", "opportunity", "position", "role", "job",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsStopword reports whether the lowercase word is an English stopword.
func IsStopword(word string) bool {
	return stopwords[word]
}
