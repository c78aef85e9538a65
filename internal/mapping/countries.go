package mapping

var defaultEntries = map[string]string{
	// totals
	"전체":      TotalInbound,
	"합계":      TotalInbound,
	"총계":      TotalInbound,
	"총합계":     TotalInbound,
	"계":       TotalInbound,
	"입국자총계":   TotalInbound,
	"외래관광객":   TotalInbound,
	"국민해외관광객": TotalOutbound,
	"국민해외여행객": TotalOutbound,
	"출국자총계":   TotalOutbound,

	// regions
	"아시아주":   "Asia Total",
	"아시아":    "Asia Total",
	"미주":     "Americas Total",
	"구주":     "Europe Total",
	"유럽":     "Europe Total",
	"대양주":    "Oceania Total",
	"아프리카주":  "Africa Total",
	"아프리카":   "Africa Total",
	"중동":     "Middle East Total",
	"기타":     "Other",
	"미상":     "Unknown",
	"교포":     "Overseas Korean",
	"승무원":    "Crew",
	"아시아주기타": "Asia Other",
	"미주기타":   "Americas Other",
	"구주기타":   "Europe Other",
	"대양주기타":  "Oceania Other",
	"아프리카기타": "Africa Other",

	// asia
	"일본":      "Japan",
	"중국":      "China",
	"홍콩":      "Hong Kong",
	"마카오":     "Macau",
	"대만":      "Taiwan",
	"몽골":      "Mongolia",
	"태국":      "Thailand",
	"말레이시아":   "Malaysia",
	"인도네시아":   "Indonesia",
	"필리핀":     "Philippines",
	"싱가포르":    "Singapore",
	"베트남":     "Vietnam",
	"캄보디아":    "Cambodia",
	"라오스":     "Laos",
	"미얀마":     "Myanmar",
	"브루나이":    "Brunei",
	"인도":      "India",
	"파키스탄":    "Pakistan",
	"방글라데시":   "Bangladesh",
	"스리랑카":    "Sri Lanka",
	"네팔":      "Nepal",
	"몰디브":     "Maldives",
	"우즈베키스탄":  "Uzbekistan",
	"카자흐스탄":   "Kazakhstan",
	"키르기스스탄":  "Kyrgyzstan",
	"이란":      "Iran",
	"이스라엘":    "Israel",
	"터키":      "Turkiye",
	"튀르키예":    "Turkiye",
	"키프로스":    "Cyprus",
	"부탄":      "Bhutan",
	"요르단":     "Jordan",
	"예멘":      "Yemen",
	"사우디아라비아": "Saudi Arabia",
	"아랍에미리트":  "United Arab Emirates",
	"걸프만4국":   "Gulf States",

	// americas
	"미국":    "United States",
	"캐나다":   "Canada",
	"멕시코":   "Mexico",
	"브라질":   "Brazil",
	"아르헨티나": "Argentina",
	"칠레":    "Chile",
	"페루":    "Peru",
	"콜롬비아":  "Colombia",
	"베네수엘라": "Venezuela",
	"에콰도르":  "Ecuador",
	"쿠바":    "Cuba",
	"도미니카공화국": "Dominican Republic",
	"자메이카":  "Jamaica",
	"과테말라":  "Guatemala",
	"코스타리카": "Costa Rica",
	"파나마":   "Panama",
	"괌":     "Guam",
	"하와이":   "Hawaii",

	// europe
	"영국":    "UK",
	"독일":    "Germany",
	"프랑스":   "France",
	"이탈리아":  "Italy",
	"스페인":   "Spain",
	"포르투갈":  "Portugal",
	"네덜란드":  "Netherlands",
	"벨기에":   "Belgium",
	"스위스":   "Switzerland",
	"오스트리아": "Austria",
	"스웨덴":   "Sweden",
	"노르웨이":  "Norway",
	"덴마크":   "Denmark",
	"핀란드":   "Finland",
	"아일랜드":  "Ireland",
	"폴란드":   "Poland",
	"체코":    "Czech Republic",
	"헝가리":   "Hungary",
	"그리스":   "Greece",
	"러시아":   "Russia",
	"우크라이나": "Ukraine",
	"크로아티아": "Croatia",
	"슬로베니아": "Slovenia",
	"슬로바키아": "Slovakia",
	"루마니아":  "Romania",
	"불가리아":  "Bulgaria",

	// oceania
	"호주":      "Australia",
	"오스트레일리아": "Australia",
	"뉴질랜드":    "New Zealand",
	"피지":      "Fiji",
	"사이판":     "Saipan",
	"북마리아나제도": "Northern Mariana Islands",
	"팔라우":     "Palau",

	// africa
	"남아프리카공화국": "South Africa",
	"남아공":      "South Africa",
	"이집트":      "Egypt",
	"모로코":      "Morocco",
	"케냐":       "Kenya",
	"나이지리아":    "Nigeria",
	"에티오피아":    "Ethiopia",
	"탄자니아":     "Tanzania",
	"모리셔스":     "Mauritius",
	"에스와티니":    "Eswatini",
	"세이셸":      "Seychelles",
	"짐바브웨":     "Zimbabwe",
	"우간다":      "Uganda",
	"시에라리온":    "Sierra Leone",
}
