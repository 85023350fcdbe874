package domain

import "errors"

// ErrSchemaMismatch は、プロバイダ応答が宣言済みスキーマに一致しないことを示します。
// このエラーはフローを中断させますが、プロセスを落とすことはありません。
var ErrSchemaMismatch = errors.New("schema mismatch")
