package script

import "regexp"

// Numbering shared by every script.
var commonProfile = &Profile{
	Name: "common",
	Shapes: compile(
		`^\d{1,2}\.\s+\S`,
		`^\d{1,2}(\.\d{1,2}){1,3}\.?\s+\S`,
		`^\d{1,2}\s+\p{Lu}`,
		`^[A-Z]\.\s+\S`,
		`^[a-z][.)]\s+\S`,
		`^[IVXLC]{1,6}\.\s+\S`,
		`^[ivxlc]{1,6}[.)]\s+\S`,
		`^\([a-zA-Z0-9]{1,3}\)\s+\S`,
		`^\d{1,2}\)\s+\S`,
	),
	Levels: [3][]*regexp.Regexp{
		compile(
			`^\d{1,2}\.?\s+\S`,
			`^(I{1,3}|IV|VI{0,3}|IX|XI{0,3}|XIV|XV)\.\s+\S`,
		),
		compile(
			`^\d{1,2}\.\d{1,2}\.?\s+\S`,
			`^[A-Z]\.\s+\S`,
		),
		compile(
			`^\d{1,2}\.\d{1,2}\.\d{1,2}(\.\d{1,2})*\.?\s+\S`,
			`^[a-z][.)]\s+\S`,
			`^\([a-zA-Z0-9]{1,3}\)\s+\S`,
			`^[ivxlc]{1,6}[.)]\s+\S`,
			`^\d{1,2}\)\s+\S`,
		),
	},
	Commas:    ",",
	Terminals: ".",
}

var latinProfile = &Profile{
	Name: "latin",
	Shapes: compile(
		`(?i)^(chapter|part|section|appendix|annex|article|chapitre|partie|annexe|cap[ií]tulo|parte|secci[oó]n|anexo|kapitel|teil|abschnitt|anhang)\s+[0-9a-z]+[.:]?\s+\S`,
	),
	Levels: [3][]*regexp.Regexp{
		compile(`(?i)^(chapter|part|appendix|annex|chapitre|partie|annexe|cap[ií]tulo|parte|anexo|kapitel|teil|anhang)\s+\S`),
		compile(`(?i)^(section|secci[oó]n|abschnitt|article)\s+\S`),
		nil,
	},
	Keywords: []string{
		// en
		"introduction", "conclusion", "conclusions", "abstract", "summary", "executive summary",
		"overview", "background", "methodology", "methods", "results", "discussion",
		"references", "bibliography", "appendix", "acknowledgments", "acknowledgements",
		"contents", "table of contents", "preface", "foreword", "glossary", "related work",
		"future work", "objectives", "scope", "requirements", "evaluation", "timeline",
		"milestones", "approach", "limitations", "recommendations", "definitions",
		"chapter", "section",
		// fr
		"résumé", "sommaire", "table des matières", "bibliographie", "annexe", "remerciements",
		"chapitre", "méthodologie", "résultats",
		// es
		"introducción", "conclusión", "conclusiones", "resumen", "índice", "bibliografía",
		"referencias", "anexo", "capítulo", "metodología", "resultados",
		// de
		"einleitung", "zusammenfassung", "inhaltsverzeichnis", "literaturverzeichnis",
		"anhang", "fazit", "kapitel", "ergebnisse", "methodik",
		// pt
		"introdução", "conclusão", "sumário", "referências",
	},
	FunctionWords: words(
		// en
		"a", "an", "the", "and", "or", "but", "nor", "so", "yet", "if", "because", "although",
		"while", "of", "in", "on", "at", "to", "for", "with", "from", "by", "into", "onto",
		"upon", "between", "through", "during", "without", "within", "among",
		"he", "she", "it", "its", "they", "we", "you", "his", "her", "their", "our",
		"which", "that", "who", "whom", "whose",
		// fr
		"le", "la", "les", "un", "une", "des", "du", "et", "ou", "mais", "il", "elle",
		"ils", "elles", "nous", "vous", "dans", "sur", "avec", "pour", "par", "sans", "sous",
		// es
		"el", "los", "las", "unos", "unas", "y", "pero", "del", "en", "con", "por", "para",
		"sin", "sobre", "él", "ella", "ellos", "nosotros",
		// de
		"der", "die", "das", "den", "dem", "ein", "eine", "einer", "und", "oder", "aber",
		"mit", "von", "zu", "bei", "aus", "für", "er", "sie", "es", "wir",
		// pt
		"os", "um", "uma", "mas", "do", "da", "dos", "das", "em", "no", "na", "com",
	),
	Commas:    ",",
	Terminals: ".",
}

var cyrillicProfile = &Profile{
	Name: "cyrillic",
	Shapes: compile(
		`(?i)^(глава|раздел|часть|приложение|параграф)\s+\S+[.:]?\s+\S`,
	),
	Levels: [3][]*regexp.Regexp{
		compile(`(?i)^(глава|часть|приложение)\s+\S`),
		compile(`(?i)^раздел\s+\S`),
		compile(`(?i)^параграф\s+\S`),
	},
	Keywords: []string{
		"введение", "заключение", "содержание", "аннотация", "литература",
		"список литературы", "приложение", "результаты", "обсуждение", "методология",
		"выводы", "глава", "раздел",
	},
	FunctionWords: words(
		"и", "в", "во", "на", "с", "со", "к", "по", "от", "до", "из", "за", "о", "об",
		"но", "а", "или", "он", "она", "оно", "они", "мы", "вы", "это", "как",
	),
	Commas:    ",;",
	Terminals: ".",
}

var arabicProfile = &Profile{
	Name: "arabic",
	Shapes: compile(
		`^(الفصل|الباب|القسم|المبحث|الجزء|الملحق|المطلب)\s+\S+(\s*[:.-]\s*|\s+)\S`,
	),
	Levels: [3][]*regexp.Regexp{
		compile(`^(الفصل|الباب|الجزء|الملحق)\s+\S`),
		compile(`^(القسم|المبحث)\s+\S`),
		compile(`^المطلب\s+\S`),
	},
	Keywords: []string{
		"مقدمة", "المقدمة", "خاتمة", "الخاتمة", "الملخص", "ملخص", "المراجع", "المصادر",
		"الفهرس", "النتائج", "المناقشة", "المنهجية", "الملاحق", "تمهيد",
	},
	FunctionWords: words(
		"في", "من", "على", "إلى", "عن", "مع", "و", "أو", "هذا", "هذه", "التي", "الذي",
		"هو", "هي", "هم", "نحن", "أن", "إن",
	),
	Commas:    "،,؛",
	Terminals: ".؟",
}

const cjkNumerals = `一二三四五六七八九十百千零〇两`

var cjkProfile = &Profile{
	Name: "cjk",
	Shapes: compile(
		`^第[`+cjkNumerals+`\d]+[章节節部篇编編卷回条條课課]\s*\S`,
		`^[`+cjkNumerals+`]+[、.]\s*\S`,
		`^\([`+cjkNumerals+`]+\)\s*\S`,
		`^\d{1,2}(\.\d{1,2})*\.?\s*[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]`,
		`^제\s*\d+\s*[장절]\s*\S`,
	),
	Levels: [3][]*regexp.Regexp{
		compile(
			`^第[`+cjkNumerals+`\d]+[章部篇编編卷]\s*\S`,
			`^제\s*\d+\s*장\s*\S`,
			`^\d{1,2}\.?\s*[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]`,
		),
		compile(
			`^第[`+cjkNumerals+`\d]+[节節条條]\s*\S`,
			`^제\s*\d+\s*절\s*\S`,
			`^[`+cjkNumerals+`]+[、.]\s*\S`,
			`^\d{1,2}\.\d{1,2}\.?\s*[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]`,
		),
		compile(
			`^\([`+cjkNumerals+`]+\)\s*\S`,
			`^\d{1,2}\.\d{1,2}\.\d{1,2}\.?\s*[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]`,
		),
	},
	Keywords: []string{
		"緒論", "绪论", "序論", "序论", "引言", "前言", "序言", "概要", "概述", "摘要", "要旨",
		"はじめに", "目次", "目录", "目錄", "結論", "结论", "总结", "總結", "まとめ",
		"参考文献", "參考文獻", "附录", "附錄", "付録", "謝辞", "致谢", "致謝", "背景",
		"研究方法", "考察", "討論", "讨论",
		"서론", "결론", "참고문헌", "요약", "목차",
	},
	SubstringKeywords: true,
	Commas:            ",、",
	Terminals:         "。!?",
}
