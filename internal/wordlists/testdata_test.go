package wordlists

var animals = []string{"ねこ", "こい", "いぬ", "ぬま"}

var fruits = []string{
	"りんご", "ごりら", "らっぱ", "ぱんだ", "だちょう",
	"うさぎ", "ぎんこう", "らいおん", "ごま", "まり",
}
