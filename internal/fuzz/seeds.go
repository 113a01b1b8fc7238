package fuzztests

import (
	"testing"
)

const maxSeedBytes = 64 << 10

var languageSeeds = []string{
	"",
	"function add(a,b){return a+b}",
	"const obj = {foo:'bar', ...rest,};",
	"if(a){b()}else if(c){d()}else{e()}",
	"items.map(x=>x*2).filter(Boolean)",
	"async x => await x",
	"let s = `a ${b + `c`} d`;",
	"a = b ? c : d; x ??= y ?? z",
	"for (let i=0;i<n;i++) { sum += i }",
	"class A extends B { constructor(){ super() } }",
	"const re = /ab+c/g; // comment",
	"}}}{{{)))(((",
	"'unterminated",
	"\xEF\xBB\xBFx = 1;\r\n",
	"\xff\xfex\x00=\x001\x00",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add(clampSeed([]byte(seed)))
	}
}

func clampSeed(b []byte) []byte {
	if len(b) > maxSeedBytes {
		return b[:maxSeedBytes]
	}
	return b
}
