package roster

import (
	"fmt"
	"os"

	"github.com/aticie/spy-bot/internal/util"
)

// Loader: 로스터 파일(플레이어 목록, 비트맵 화이트리스트)을 읽는다.
// 매 호출마다 파일을 새로 읽으므로, 재시작 없이 파일 수정이 다음 사이클에 반영된다.
type Loader struct {
	playersFile  string
	beatmapsFile string
}

// NewLoader: 새로운 Loader를 생성한다.
func NewLoader(playersFile, beatmapsFile string) *Loader {
	return &Loader{
		playersFile:  playersFile,
		beatmapsFile: beatmapsFile,
	}
}

// Players: 감시 대상 플레이어 목록을 파일에 적힌 순서대로 반환한다.
func (l *Loader) Players() ([]string, error) {
	return readLines(l.playersFile)
}

// Beatmaps: 비트맵 화이트리스트를 파일에 적힌 순서대로 반환한다.
func (l *Loader) Beatmaps() ([]string, error) {
	return readLines(l.beatmapsFile)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file %s: %w", path, err)
	}
	return util.SplitLines(string(data)), nil
}
