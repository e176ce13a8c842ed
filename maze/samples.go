package maze

// Part1Start is the start position of Part1Maze.
var Part1Start = Position{Row: 3, Col: 2}

// Part1Maze returns the 6x6 reference maze of the classic grid world exercise.
func Part1Maze() [][]Cell {
	G, B, W, E := Green, Brown, Wall, Empty
	return [][]Cell{
		{G, W, G, E, E, G},
		{E, B, E, G, W, B},
		{E, E, B, E, G, E},
		{E, E, E, B, E, G},
		{E, W, W, W, B, E},
		{E, E, E, E, E, E},
	}
}
