package pkg

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// StdioPath 作为输入路径时表示从标准输入读取
const StdioPath = "-"

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadInput 读取输入内容，path 为 "-" 时从 stdin 读取
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path == StdioPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
		return string(data), nil
	}
	exist, err := CheckFileExist(path)
	if err != nil {
		return "", errors.Wrap(err, "check file exist error")
	}
	if !exist {
		return "", errors.Errorf("input file %s not exist", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// WriteOutput 写出结果，path 为空时写到 stdout
func WriteOutput(path string, stdout io.Writer, data []byte) error {
	if len(path) == 0 {
		_, err := stdout.Write(data)
		return errors.Wrap(err, "write stdout")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}
