package entity

type Player struct {
	Mark  Mark
	Wins  int
	IsBot bool
}
