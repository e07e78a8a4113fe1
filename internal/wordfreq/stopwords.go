package wordfreq

// baseStopwords is the base French stopword list, in post-clean form
// (lowercase, accents folded). Per-site additions extend it via Options.
// Words shorter than the minimum token length are kept for completeness;
// the length filter removes them before the stopword check anyway.
var baseStopwords = []string{
	"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou",
	"mais", "donc", "or", "ni", "car", "ne", "pas", "plus", "moins",
	"tres", "bien", "peu", "trop", "assez", "aussi", "ainsi", "alors",
	"je", "tu", "il", "elle", "nous", "vous", "ils", "elles", "on",
	"me", "te", "se", "lui", "leur", "eux", "moi", "toi", "soi",
	"ce", "cet", "cette", "ces", "celui", "celle", "ceux", "celles",
	"cela", "ceci", "ca",
	"mon", "ton", "son", "ma", "ta", "sa", "mes", "tes", "ses",
	"notre", "votre", "nos", "vos", "leurs",
	"qui", "que", "quoi", "dont", "quel", "quelle", "quels", "quelles",
	"lequel", "laquelle", "lesquels", "lesquelles",
	"a", "au", "aux", "en", "y", "dans", "par", "pour", "sur", "sous",
	"vers", "chez", "entre", "avec", "sans", "avant", "apres", "depuis",
	"pendant", "contre", "selon", "malgre", "parmi", "durant",
	"etre", "suis", "es", "est", "sommes", "etes", "sont", "etais",
	"etait", "etions", "etiez", "etaient", "sera", "seront", "serait",
	"seraient", "soit", "soient", "ete",
	"avoir", "ai", "as", "avons", "avez", "ont", "avait", "avais",
	"avaient", "aura", "auront", "aurait", "auraient", "ait", "aient",
	"eu",
	"faire", "fait", "faits", "faite", "faites", "font", "faisait",
	"fera", "feront",
	"tout", "tous", "toute", "toutes", "autre", "autres", "meme",
	"memes", "tel", "telle", "tels", "telles", "chaque", "plusieurs",
	"quelque", "quelques", "certains", "certaines", "aucun", "aucune",
	"si", "oui", "non", "quand", "comment", "pourquoi", "parce",
	"comme", "encore", "deja", "toujours", "jamais", "souvent",
	"ici", "ailleurs", "partout", "dessus", "dessous", "dedans",
	"peut", "peuvent", "pouvait", "pourrait", "pourraient", "doit",
	"doivent", "devait", "devrait", "faut", "faudrait",
	"dire", "dit", "dite", "dits", "dites", "disait",
	"cependant", "pourtant", "neanmoins", "toutefois", "afin", "lors",
	"lorsque", "puisque", "quant", "tandis", "sinon", "surtout",
	"notamment", "egalement", "enfin", "ensuite", "puis",
	"voici", "voila", "etant", "ayant",
}

// junkWords are parsing artifacts and boilerplate vocabulary news pages
// leak into extracted text: navigation labels, paywall prompts, sharing
// widgets. Counting them would say nothing about the articles themselves.
var junkWords = []string{
	"article", "articles", "lire", "lecture", "abonnes", "abonnez",
	"abonnement", "newsletter", "cookies", "javascript", "publicite",
	"partager", "partagez", "commentaire", "commentaires", "reagir",
	"suite", "cliquez", "inscrivez", "connectez", "accueil", "rubrique",
	"rubriques", "edition", "editions", "video", "videos", "photo",
	"photos", "diaporama", "direct", "live", "replay", "podcast",
	"reserves", "reproduction", "droits", "copyright", "mentions",
	"legales", "offre", "offres", "gratuit", "gratuite", "premium",
	"exclusif", "sommaire", "precedent", "suivant", "retour", "haut",
	"menu", "recherche", "resultats", "page", "pages", "site", "sites",
}
