// bytesize.go -
// Copyright (C) 2020  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cache

import "strconv"

// byteSize formats sizes for the cache log messages.
type byteSize int64

var sizePrefixes = []string{"", "K", "M", "G", "T", "P"}

func (x byteSize) String() string {
	val := float64(x)
	pfx := sizePrefixes[0]
	for _, pfx = range sizePrefixes {
		if val <= 1000.0 {
			break
		}
		val /= 1024.0
	}
	return strconv.FormatFloat(val, 'g', 3, 64) + pfx + "B"
}
